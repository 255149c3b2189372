// Package source contains the per-feed adapters that fetch raw disaster-event
// payloads over HTTPS and normalize them into the canonical model.
package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/couchcryptid/disaster-alerts-service/internal/domain"
)

const userAgent = "disaster-alerts-service/1.0"

// Source is a disaster feed adapter. Fetch returns the feed's current
// snapshot normalized into canonical events; missing upstream fields are
// filled with the documented defaults, never left unset.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.DisasterEvent, error)
}

// NewHTTPClient builds the shared feed client with separate connect and
// response budgets so a stalled feed cannot hold a poll cycle indefinitely.
func NewHTTPClient(connectTimeout, responseTimeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: connectTimeout, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: connectTimeout,
	}
	return &http.Client{Timeout: responseTimeout, Transport: tr}
}

// get issues a GET request against a feed endpoint and returns the body and
// status code. Transport-level failures are returned as errors; non-2xx
// statuses are left to the caller's policy.
func get(ctx context.Context, client *http.Client, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
