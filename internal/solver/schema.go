package solver

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Schema names the response layout the service speaks. Deployments have used
// two different names for the answer field, so the layout is configured up
// front rather than sniffed from each response.
type Schema string

const (
	// SchemaResult answers in "result".
	SchemaResult Schema = "result"
	// SchemaSolution answers in "solution".
	SchemaSolution Schema = "solution"
)

func ParseSchema(s string) (Schema, error) {
	switch Schema(s) {
	case SchemaResult, SchemaSolution:
		return Schema(s), nil
	case "":
		return SchemaResult, nil
	}
	return "", fmt.Errorf("unknown response schema %q", s)
}

var ErrMalformedResponse = errors.New("malformed solver response")

// Request is the JSON body of POST /calculate.
type Request struct {
	Image      string            `json:"image"`
	DictOfVars map[string]string `json:"dict_of_vars"`
}

// Entry is one recognised expression.
type Entry struct {
	Expr   string
	Answer string
	Assign bool
}

// Flag is the service's boolean, which arrives as "true"/"false" strings.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("assign flag %q: %w", s, ErrMalformedResponse)
		}
		*f = Flag(v)
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("assign flag %s: %w", b, ErrMalformedResponse)
	}
	*f = Flag(v)
	return nil
}

type wireEntry struct {
	Expr     *string `json:"expr"`
	Result   *string `json:"result"`
	Solution *string `json:"solution"`
	Assign   Flag    `json:"assign"`
}

type wireResponse struct {
	Data *[]wireEntry `json:"data"`
}

// Decode parses a response body under the given schema. Missing fields are
// reported as ErrMalformedResponse instead of turning into empty strings.
func Decode(body []byte, schema Schema) ([]Entry, error) {
	var resp wireResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrMalformedResponse)
	}

	entries := make([]Entry, 0, len(*resp.Data))
	for i, w := range *resp.Data {
		if w.Expr == nil {
			return nil, fmt.Errorf("%w: entry %d has no expr", ErrMalformedResponse, i)
		}
		answer := w.Result
		if schema == SchemaSolution {
			answer = w.Solution
		}
		if answer == nil {
			return nil, fmt.Errorf("%w: entry %d has no %s", ErrMalformedResponse, i, schema)
		}
		entries = append(entries, Entry{Expr: *w.Expr, Answer: *answer, Assign: bool(w.Assign)})
	}
	return entries, nil
}
