package scanner

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	consts "github.com/khanhnv2901/webint/internal/shared/constants"
	errs "github.com/khanhnv2901/webint/internal/shared/errors"
)

// FetchResult is the single capture of the target's HTTP response, shared by
// every downstream consumer. Nothing re-fetches: the fingerprint engine, the
// header analyzer, and the report builder all read from this value.
type FetchResult struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	FinalURL   string        // URL after redirects
	Duration   time.Duration // Time to response headers
}

// FetchProber performs the one GET request of a scan.
type FetchProber struct {
	Timeout   time.Duration
	UserAgent string
	Limiter   *rate.Limiter  // Optional shared outbound limiter
	RootCAs   *x509.CertPool // Optional extra trust roots, mainly for local endpoints
}

// Fetch issues a GET against the target and captures status, headers, and a
// size-capped body. Redirects are followed transparently; the final response
// is what is captured. Any transport failure is returned to the caller, which
// degrades the fetch-derived report categories.
func (f *FetchProber) Fetch(ctx context.Context, target *Target) (*FetchResult, error) {
	return f.get(ctx, target.URL, consts.BodyCaptureLimitBytes)
}

// Favicon fetches /favicon.ico resolved against base (normally the final URL
// of the main fetch, so redirects to another host are honored).
func (f *FetchProber) Favicon(ctx context.Context, base string) ([]byte, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	faviconURL := baseURL.ResolveReference(&url.URL{Path: "/favicon.ico"})

	result, err := f.get(ctx, faviconURL.String(), consts.FaviconCaptureLimitBytes)
	if err != nil {
		return nil, err
	}
	if result.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("favicon request returned status %d", result.StatusCode)
	}
	if len(result.Body) == 0 {
		return nil, errs.ErrEmptyResponse
	}
	return result.Body, nil
}

func (f *FetchProber) get(ctx context.Context, rawURL string, bodyLimit int64) (*FetchResult, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultProbeTimeout
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs:            f.RootCAs,
				InsecureSkipVerify: false,
			},
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Duration counts up to response headers, not the body read, so a huge
	// page doesn't distort the reported response time.
	duration := time.Since(start)

	// Partial body on read error is acceptable; detection still runs on
	// whatever arrived.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))

	return &FetchResult{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
		Duration:   duration,
	}, nil
}
