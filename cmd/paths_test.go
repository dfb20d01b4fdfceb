package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khanhnv2901/webint/internal/scanner"
)

func TestSanitizeHostLabel(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "plain domain", host: "example.com", want: "example.com"},
		{name: "subdomain with dash", host: "api-v2.example.com", want: "api-v2.example.com"},
		{name: "path separators replaced", host: "../../etc", want: ".._.._etc"},
		{name: "port separator replaced", host: "example.com:8080", want: "example.com_8080"},
		{name: "empty", host: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeHostLabel(tt.host); got != tt.want {
				t.Fatalf("sanitizeHostLabel(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestScanFilename(t *testing.T) {
	now := time.Date(2025, 8, 25, 12, 30, 45, 0, time.UTC)

	envelope := scanner.NewEnvelope(&scanner.Report{
		BasicInfo: scanner.BasicInfo{Domain: "example.com"},
	})
	if got, want := scanFilename(envelope, now), "scan_example.com_20250825T123045Z.json"; got != want {
		t.Fatalf("scanFilename = %q, want %q", got, want)
	}

	failed := scanner.NewErrorEnvelope(os.ErrInvalid)
	if got, want := scanFilename(failed, now), "scan_20250825T123045Z.json"; got != want {
		t.Fatalf("scanFilename for failed scan = %q, want %q", got, want)
	}
}

func TestSaveReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	envelope := scanner.NewEnvelope(&scanner.Report{
		BasicInfo: scanner.BasicInfo{Domain: "example.com"},
	})
	payload := []byte(`{"success":true}`)

	path, err := saveReport(dir, envelope, payload)
	if err != nil {
		t.Fatalf("saveReport failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected report inside %s, got %s", dir, path)
	}
	if !strings.HasPrefix(filepath.Base(path), "scan_example.com_") {
		t.Fatalf("unexpected report file name: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved report: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("saved payload mismatch: %s", data)
	}
}

func TestSaveReportHostileDomainStaysInside(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "reports")
	envelope := scanner.NewEnvelope(&scanner.Report{
		BasicInfo: scanner.BasicInfo{Domain: "../escape"},
	})

	path, err := saveReport(dir, envelope, []byte("{}"))
	if err != nil {
		t.Fatalf("saveReport failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected sanitized report to stay inside %s, got %s", dir, path)
	}
}
