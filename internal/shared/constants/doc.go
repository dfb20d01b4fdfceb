// Package constants centralizes configuration defaults shared across the CLI.
//
// Storing probe timeouts, capture limits, resolver addresses, and file
// permissions in one place prevents magic numbers from scattering across
// cmd/ and internal/. The values here reflect conservative defaults that can
// be referenced from multiple packages without introducing import cycles.
package constants
