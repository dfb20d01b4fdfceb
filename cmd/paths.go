package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/khanhnv2901/webint/internal/scanner"
	consts "github.com/khanhnv2901/webint/internal/shared/constants"
	"github.com/khanhnv2901/webint/internal/shared/security"
)

// sanitizeHostLabel reduces a host name to characters safe inside a file
// name. Anything outside [a-zA-Z0-9.-] becomes an underscore.
func sanitizeHostLabel(host string) string {
	var b strings.Builder
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// scanFilename derives the auto-generated report file name for --save-dir.
func scanFilename(envelope *scanner.Envelope, now time.Time) string {
	ts := now.UTC().Format("20060102T150405Z")
	host := ""
	if envelope != nil && envelope.Data != nil {
		host = sanitizeHostLabel(envelope.Data.BasicInfo.Domain)
	}
	if host == "" {
		return fmt.Sprintf("scan_%s.json", ts)
	}
	return fmt.Sprintf("scan_%s_%s.json", host, ts)
}

// saveReport writes payload under dir using a derived file name. The host
// name feeds the file name, so the final path goes through the escape guard.
func saveReport(dir string, envelope *scanner.Envelope, payload []byte) (string, error) {
	if err := os.MkdirAll(dir, consts.DefaultDirPerm); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}

	path, err := security.ResolveWithin(dir, scanFilename(envelope, time.Now()))
	if err != nil {
		return "", fmt.Errorf("resolve report path: %w", err)
	}

	if err := os.WriteFile(path, payload, consts.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
