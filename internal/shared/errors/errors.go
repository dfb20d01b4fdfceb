package errors

import "errors"

// Target errors
var (
	ErrEmptyTarget   = errors.New("target cannot be empty")
	ErrInvalidTarget = errors.New("invalid target URL")
	ErrMissingHost   = errors.New("target URL has no host")
)

// Probe errors
var (
	ErrNoRecords      = errors.New("no records in answer")
	ErrNoExternalTool = errors.New("external resolver tool not available")
	ErrEmptyResponse  = errors.New("empty response body")
	ErrNoCertificate  = errors.New("no peer certificate presented")
)

// Collaborator errors
var (
	ErrGeoNotConfigured = errors.New("geolocation endpoint not configured")
	ErrGeoLookupFailed  = errors.New("geolocation lookup failed")
)
