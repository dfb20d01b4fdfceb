package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	consts "github.com/khanhnv2901/webint/internal/shared/constants"
	errs "github.com/khanhnv2901/webint/internal/shared/errors"
)

// GeoInfo is the geolocation collaborator's view of an address.
type GeoInfo struct {
	Country string `json:"country"`
	City    string `json:"city"`
	ISP     string `json:"isp"`
}

// GeoClient queries a configured ip-api style JSON endpoint. Endpoint is a
// URL template where %s is replaced by the address, for example
// "http://ip-api.com/json/%s". Without an endpoint the client is a stub and
// every lookup degrades to Unknown at the report boundary.
type GeoClient struct {
	Endpoint string
	Timeout  time.Duration
	Limiter  *rate.Limiter
}

const geoResponseLimitBytes = 64 << 10

// Lookup resolves geolocation data for ip via the configured endpoint.
func (g *GeoClient) Lookup(ctx context.Context, ip string) (*GeoInfo, error) {
	if g.Endpoint == "" {
		return nil, errs.ErrGeoNotConfigured
	}

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultProbeTimeout
	}

	if g.Limiter != nil {
		if err := g.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(g.Endpoint, ip), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrGeoLookupFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrGeoLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errs.ErrGeoLookupFailed, resp.StatusCode)
	}

	var info GeoInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, geoResponseLimitBytes)).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", errs.ErrGeoLookupFailed, err)
	}
	return &info, nil
}
