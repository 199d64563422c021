// Package probe builds health checks that call a source's HTTP endpoint.
package probe

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// maxDrain bounds how much of a response body is read before closing it.
	maxDrain = 64 << 10

	// MaxBodySize is the largest response body Fetch accepts.
	MaxBodySize = 8 << 20
)

var _ ports.Checker = (*HTTPChecker)(nil)

// HTTPChecker builds checks that issue GET requests.
type HTTPChecker struct {
	client    *http.Client
	userAgent string
}

// NewHTTPChecker creates a checker using client, or a default client when nil.
func NewHTTPChecker(client *http.Client, userAgent string) *HTTPChecker {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPChecker{client: client, userAgent: userAgent}
}

// Check returns a check that succeeds when url answers with a 2xx status.
// The request deadline comes from the context supplied by the tracker.
func (c *HTTPChecker) Check(url string) ports.CheckFunc {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCheckRequestFailed.Error()), "url", url)
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCheckRequestFailed.Error()), "url", url)
		}
		defer func() { _ = resp.Body.Close() }()
		_, _ = io.CopyN(io.Discard, resp.Body, maxDrain)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return zerr.With(zerr.Wrap(domain.ErrCheckStatus, statusMessage(resp)), "url", url)
		}
		return nil
	}
}

// Fetch performs a GET and returns the body. It is the plain fetch operation
// wrapped by the guard for `vigil fetch`.
func (c *HTTPChecker) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", url)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.CopyN(io.Discard, resp.Body, maxDrain)
		return "", zerr.With(zerr.Wrap(domain.ErrFetchFailed, statusMessage(resp)), "url", url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", url)
	}
	if len(body) > MaxBodySize {
		msg := "response body exceeds " + strconv.Itoa(MaxBodySize) + " bytes"
		return "", zerr.With(zerr.Wrap(domain.ErrFetchFailed, msg), "url", url)
	}
	return string(body), nil
}

func statusMessage(resp *http.Response) string {
	return "HTTP " + strconv.Itoa(resp.StatusCode)
}
