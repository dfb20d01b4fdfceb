package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultProbeTimeout bounds every network probe (fetch, TLS, DNS).
	DefaultProbeTimeout = 10 * time.Second
	// DefaultDNSTimeout bounds each individual DNS sub-lookup.
	DefaultDNSTimeout = 5 * time.Second
	// BodyCaptureLimitBytes caps how much of a response body is read for
	// analysis and fingerprinting.
	BodyCaptureLimitBytes = 1 << 20
	// FaviconCaptureLimitBytes caps the favicon download in deep mode.
	FaviconCaptureLimitBytes = 512 << 10
	// DefaultRateLimit is the outbound requests-per-second budget shared by
	// the fetch, favicon, and geolocation clients.
	DefaultRateLimit = 5
	// DefaultUserAgent identifies webint on outbound requests.
	DefaultUserAgent = "Mozilla/5.0 (compatible; webint/1.0; +https://github.com/khanhnv2901/webint)"
)

// DefaultRecursors are the public resolvers queried for NS and DNSKEY
// records, in fallback order.
var DefaultRecursors = []string{"8.8.8.8:53", "1.1.1.1:53"}
