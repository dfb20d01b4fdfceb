package scanner

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	errs "github.com/khanhnv2901/webint/internal/shared/errors"
)

// Target contains the parsed components of the URL under scan.
type Target struct {
	Original string // Target string exactly as supplied
	Scheme   string // http, https, or whatever the caller wrote
	Host     string // Hostname (without protocol, path, port)
	Port     int    // Explicit port, or the scheme default
	Path     string // Path if specified
	URL      string // Full normalized URL (for HTTP requests)
}

// ParseTarget parses a target string into structured components.
// This handles various input formats:
//   - example.com
//   - http://example.com
//   - https://example.com:8443/path
//   - example.com:8080
//
// A target that cannot be reduced to a scheme and host is the one fatal
// input error of a scan.
func ParseTarget(target string) (*Target, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, errs.ErrEmptyTarget
	}

	// Try to parse as URL first
	parsed, err := url.Parse(target)

	// If parsing fails OR scheme is missing OR scheme doesn't look like a real
	// scheme ("example.com:8080" parses with scheme "example.com", and
	// "localhost:8080" parses as opaque), prepend http:// and parse again.
	if err != nil || parsed.Scheme == "" || parsed.Opaque != "" || strings.Contains(parsed.Scheme, ".") {
		parsed, err = url.Parse("http://" + target)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidTarget, err)
		}
	}

	host := parsed.Hostname()
	if host == "" {
		return nil, errs.ErrMissingHost
	}

	port := 0
	if p := parsed.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad port %q", errs.ErrInvalidTarget, p)
		}
	} else if parsed.Scheme == "https" {
		port = 443
	} else {
		port = 80
	}

	return &Target{
		Original: target,
		Scheme:   parsed.Scheme,
		Host:     host,
		Port:     port,
		Path:     parsed.Path,
		URL:      parsed.String(),
	}, nil
}

// IsTLS reports whether the target calls for a TLS probe.
func (t *Target) IsTLS() bool {
	return t.Scheme == "https"
}

// Address returns the host:port pair used for TLS dials.
func (t *Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}
