package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
	"go.uber.org/zap"
)

// ServiceType is what a solver advertises on the local network.
const ServiceType = "_calcboard._tcp"

var ErrNoSolver = errors.New("no solver found on the local network")

// BaseURL turns a browse result into http://ip:port[/path]. A TXT record of
// the form "path=/api" sets the path.
func BaseURL(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(e.AddrV4.String(), strconv.Itoa(e.Port)),
	}
	for _, field := range e.InfoFields {
		if p, ok := strings.CutPrefix(field, "path="); ok {
			u.Path = "/" + strings.Trim(p, "/")
		}
	}
	return u.String(), true
}

// Discover browses mDNS for up to timeout and returns the first usable solver.
func Discover(ctx context.Context, timeout time.Duration, log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	go func() {
		for e := range entries {
			u, ok := BaseURL(e)
			if !ok {
				continue
			}
			log.Debug("solver entry", zap.String("name", e.Name), zap.String("url", u))
			select {
			case found <- u:
			default:
			}
		}
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errc := make(chan error, 1)
	go func() {
		err := mdns.Query(params)
		close(entries)
		errc <- err
	}()

	select {
	case u := <-found:
		log.Info("discovered solver", zap.String("url", u))
		return u, nil
	case err := <-errc:
		if err != nil {
			return "", fmt.Errorf("mdns query: %w", err)
		}
		// The consumer may still be holding the last entry.
		select {
		case u := <-found:
			return u, nil
		case <-time.After(50 * time.Millisecond):
		}
		return "", ErrNoSolver
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
