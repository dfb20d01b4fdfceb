package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/khanhnv2901/webint/internal/scanner"
)

// captureStdout redirects os.Stdout for the duration of fn and returns what
// was written. Commands print user-facing summaries with fmt.Printf, so
// SetOut alone does not cover them.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stdout, fn)
}

// captureStderr does the same for os.Stderr, where progress and diagnostics
// land.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return captureFile(t, &os.Stderr, fn)
}

func captureFile(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	original := *target
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	*target = w
	defer func() { *target = original }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close pipe writer: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(data)
}

// sampleReport builds a fully populated scan report for rendering tests.
func sampleReport() *scanner.Report {
	return &scanner.Report{
		BasicInfo: scanner.BasicInfo{
			URL:        "https://example.com",
			Domain:     "example.com",
			StatusCode: 200,
			Protocol:   "HTTP/2.0",
			Port:       443,
		},
		ServerInfo: scanner.ServerInfo{
			IPAddress: "93.184.216.34",
			Server:    "nginx/1.18.0",
			Location:  "United States",
			City:      "Los Angeles",
			ISP:       "EdgeCast",
		},
		DomainInfo: scanner.DomainInfo{
			Registrar:    scanner.Unknown,
			CreationDate: scanner.Unknown,
			ExpiryDate:   scanner.Unknown,
			NameServers:  "a.iana-servers.net, b.iana-servers.net",
			DNSSEC:       scanner.Enabled,
		},
		SecurityInfo: scanner.SecurityInfo{
			SSLCertificate: scanner.SSLCertificate{
				Enabled:   true,
				Issuer:    "DigiCert Inc",
				Subject:   "example.com",
				ValidFrom: "2025-01-15T00:00:00Z",
				ValidTo:   "2026-01-15T23:59:59Z",
			},
			SecurityHeaders: map[string]string{
				"Strict-Transport-Security": "max-age=31536000",
				"X-Content-Type-Options":    "nosniff",
			},
			HSTSEnabled:           true,
			ContentSecurityPolicy: false,
			HeaderGrade:           "C",
		},
		PerformanceInfo: scanner.PerformanceInfo{
			ResponseTime: "123ms",
			Compression:  scanner.Enabled,
			Caching:      scanner.Disabled,
			PageSize:     "12.4 KB",
		},
		TechnologyInfo: scanner.TechnologyInfo{
			WebServer:            "Nginx",
			ProgrammingLanguage:  "PHP",
			CMS:                  "WordPress",
			JavaScriptFrameworks: "jQuery",
			Analytics:            scanner.NoneDetected,
			MetaGenerator:        "WordPress 6.4.2",
			FaviconSHA1:          "da39a3ee5e6b4b0d3255bfef95601890afd80709",
			FaviconMMH3:          "-1205551036",
			DetectedTechnologies: []string{"Nginx", "WordPress", "jQuery"},
		},
	}
}

// resetScanFlags restores the root command's scan flags and runtime config to
// their defaults after a test mutated them. The scan flags are bound straight
// into cliConfig, so copying a fresh config over it restores their values.
func resetScanFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		*cliConfig = *newCLIConfig()
		for _, name := range []string{"timeout", "deep", "user-agent", "rate", "nameservers", "dns-timeout", "geoip-endpoint", "pretty", "progress", "output", "save-dir"} {
			if flag := rootCmd.Flags().Lookup(name); flag != nil {
				flag.Changed = false
			}
		}
		prettyOutput = false
		progressEnabled = false
		outputFile = ""
		saveDir = ""
	})
}
