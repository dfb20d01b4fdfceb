package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/khanhnv2901/webint/internal/scanner"
)

func resetSignatureFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_ = signaturesCmd.Flags().Set("category", "")
		_ = signaturesCmd.Flags().Set("json", "false")
		for _, name := range []string{"category", "json"} {
			if flag := signaturesCmd.Flags().Lookup(name); flag != nil {
				flag.Changed = false
			}
		}
	})
}

func TestSignaturesCommandTable(t *testing.T) {
	resetSignatureFlags(t)

	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })

	var buf bytes.Buffer
	signaturesCmd.SetOut(&buf)
	t.Cleanup(func() { signaturesCmd.SetOut(nil) })

	if err := signaturesCmd.RunE(signaturesCmd, []string{}); err != nil {
		t.Fatalf("signatures command failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"CATEGORY", "LABEL", "PATTERN", "PHP", "WordPress", "React", "jQuery", "Google Analytics", "Total:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected listing to contain %q\n%s", want, output)
		}
	}
	if !strings.Contains(output, "17 signature(s)") {
		t.Errorf("expected the full catalog count, got %q", output)
	}
}

func TestSignaturesCommandJSON(t *testing.T) {
	resetSignatureFlags(t)

	var buf bytes.Buffer
	signaturesCmd.SetOut(&buf)
	t.Cleanup(func() { signaturesCmd.SetOut(nil) })

	if err := signaturesCmd.Flags().Set("json", "true"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	if err := signaturesCmd.RunE(signaturesCmd, []string{}); err != nil {
		t.Fatalf("signatures command failed: %v", err)
	}

	var entries []scanner.CatalogEntry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("output is not a JSON catalog: %v\n%s", err, buf.String())
	}
	if len(entries) != len(scanner.Catalog()) {
		t.Fatalf("expected %d entries, got %d", len(scanner.Catalog()), len(entries))
	}
	if entries[0].Category != scanner.CategoryLanguage {
		t.Errorf("expected language signatures first, got %q", entries[0].Category)
	}
}

func TestSignaturesCommandCategoryFilter(t *testing.T) {
	resetSignatureFlags(t)

	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })

	var buf bytes.Buffer
	signaturesCmd.SetOut(&buf)
	t.Cleanup(func() { signaturesCmd.SetOut(nil) })

	if err := signaturesCmd.Flags().Set("category", "CMS"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	if err := signaturesCmd.RunE(signaturesCmd, []string{}); err != nil {
		t.Fatalf("signatures command failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"WordPress", "Drupal", "Shopify"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected cms rows to contain %q\n%s", want, output)
		}
	}
	for _, reject := range []string{"PHP", "jQuery", "Hotjar"} {
		if strings.Contains(output, reject) {
			t.Errorf("expected cms filter to drop %q\n%s", reject, output)
		}
	}
	if !strings.Contains(output, "5 signature(s)") {
		t.Errorf("expected five cms rows, got %q", output)
	}
}

func TestSignaturesCommandUnknownCategory(t *testing.T) {
	resetSignatureFlags(t)

	var buf bytes.Buffer
	signaturesCmd.SetOut(&buf)
	t.Cleanup(func() { signaturesCmd.SetOut(nil) })

	if err := signaturesCmd.Flags().Set("category", "databases"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	err := signaturesCmd.RunE(signaturesCmd, []string{})
	if err == nil {
		t.Fatal("expected an error for an unknown category")
	}
	if !strings.Contains(err.Error(), `unknown category "databases"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidSignatureCategory(t *testing.T) {
	for _, category := range []string{scanner.CategoryLanguage, scanner.CategoryCMS, scanner.CategoryJSFramework, scanner.CategoryAnalytics} {
		if !validSignatureCategory(category) {
			t.Errorf("expected %q to be valid", category)
		}
	}
	for _, category := range []string{"", "server", "CMS"} {
		if validSignatureCategory(category) {
			t.Errorf("expected %q to be invalid", category)
		}
	}
}
