package scanner

import (
	"errors"
	"testing"

	errs "github.com/khanhnv2901/webint/internal/shared/errors"
)

func TestParseTarget(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantScheme string
		wantHost   string
		wantPort   int
		wantPath   string
		wantURL    string
	}{
		{
			name:       "Plain domain",
			input:      "example.com",
			wantScheme: "http",
			wantHost:   "example.com",
			wantPort:   80,
			wantURL:    "http://example.com",
		},
		{
			name:       "HTTP URL",
			input:      "http://example.com",
			wantScheme: "http",
			wantHost:   "example.com",
			wantPort:   80,
			wantURL:    "http://example.com",
		},
		{
			name:       "HTTPS URL",
			input:      "https://example.com",
			wantScheme: "https",
			wantHost:   "example.com",
			wantPort:   443,
			wantURL:    "https://example.com",
		},
		{
			name:       "HTTPS URL with port and path",
			input:      "https://example.com:8443/admin",
			wantScheme: "https",
			wantHost:   "example.com",
			wantPort:   8443,
			wantPath:   "/admin",
			wantURL:    "https://example.com:8443/admin",
		},
		{
			name:       "Domain with port but no scheme",
			input:      "example.com:8080",
			wantScheme: "http",
			wantHost:   "example.com",
			wantPort:   8080,
			wantURL:    "http://example.com:8080",
		},
		{
			name:       "Localhost with port",
			input:      "localhost:3000",
			wantScheme: "http",
			wantHost:   "localhost",
			wantPort:   3000,
			wantURL:    "http://localhost:3000",
		},
		{
			name:       "Subdomain with path",
			input:      "api.example.com/v1/status",
			wantScheme: "http",
			wantHost:   "api.example.com",
			wantPort:   80,
			wantPath:   "/v1/status",
			wantURL:    "http://api.example.com/v1/status",
		},
		{
			name:       "Surrounding whitespace",
			input:      "  https://example.com  ",
			wantScheme: "https",
			wantHost:   "example.com",
			wantPort:   443,
			wantURL:    "https://example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target, err := ParseTarget(tc.input)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if target.Scheme != tc.wantScheme {
				t.Errorf("Expected scheme '%s', got '%s'", tc.wantScheme, target.Scheme)
			}
			if target.Host != tc.wantHost {
				t.Errorf("Expected host '%s', got '%s'", tc.wantHost, target.Host)
			}
			if target.Port != tc.wantPort {
				t.Errorf("Expected port %d, got %d", tc.wantPort, target.Port)
			}
			if target.Path != tc.wantPath {
				t.Errorf("Expected path '%s', got '%s'", tc.wantPath, target.Path)
			}
			if target.URL != tc.wantURL {
				t.Errorf("Expected URL '%s', got '%s'", tc.wantURL, target.URL)
			}
		})
	}
}

func TestParseTarget_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "Empty string",
			input:   "",
			wantErr: errs.ErrEmptyTarget,
		},
		{
			name:    "Whitespace only",
			input:   "   ",
			wantErr: errs.ErrEmptyTarget,
		},
		{
			name:    "Scheme without host",
			input:   "http://",
			wantErr: errs.ErrMissingHost,
		},
		{
			name:    "Space inside host",
			input:   "http://exa mple.com",
			wantErr: errs.ErrInvalidTarget,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTarget(tc.input)
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTarget_IsTLS(t *testing.T) {
	httpsTarget, err := ParseTarget("https://example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !httpsTarget.IsTLS() {
		t.Error("Expected https target to report IsTLS")
	}

	httpTarget, err := ParseTarget("http://example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if httpTarget.IsTLS() {
		t.Error("Expected http target to not report IsTLS")
	}
}

func TestTarget_Address(t *testing.T) {
	target, err := ParseTarget("https://example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := "example.com:443"
	if target.Address() != expected {
		t.Errorf("Expected address '%s', got '%s'", expected, target.Address())
	}
}
