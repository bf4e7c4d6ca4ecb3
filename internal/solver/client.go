// Package solver talks to the remote recognition service that turns a board
// snapshot into expressions and answers.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const calculatePath = "calculate"

// maxBody caps how much of a response we are willing to read.
const maxBody = 4 << 20

// StatusError is returned for any non-2xx reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("solver returned %d", e.Code)
	}
	return fmt.Sprintf("solver returned %d: %s", e.Code, e.Body)
}

// Client posts snapshots to {BaseURL}/calculate.
type Client struct {
	baseURL    string
	schema     Schema
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL string, schema Schema, timeout time.Duration, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		schema:  schema,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}, nil
}

func (c *Client) Endpoint() string {
	ep, _ := url.JoinPath(c.baseURL, calculatePath)
	return ep
}

// Calculate sends one request. Transport failures, non-2xx statuses and
// malformed bodies all come back as errors.
func (c *Client) Calculate(ctx context.Context, req Request) ([]Entry, error) {
	if req.DictOfVars == nil {
		req.DictOfVars = map[string]string{}
	}
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	requestID := uuid.NewString()
	log := c.log.With(zap.String("request_id", requestID))
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	log.Debug("sending snapshot",
		zap.Int("body_bytes", len(jsonBody)),
		zap.Int("vars", len(req.DictOfVars)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("solver error", zap.Int("status", resp.StatusCode))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	entries, err := Decode(body, c.schema)
	if err != nil {
		log.Warn("bad response", zap.Error(err))
		return nil, err
	}
	log.Info("solved",
		zap.Int("entries", len(entries)),
		zap.Duration("duration", time.Since(start)))
	return entries, nil
}
