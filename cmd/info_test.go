package cmd

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"testing"
)

func TestInfoCommand(t *testing.T) {
	resetScanFlags(t)

	var buf bytes.Buffer
	infoCmd.SetOut(&buf)
	t.Cleanup(func() { infoCmd.SetOut(nil) })

	if err := infoCmd.RunE(infoCmd, []string{}); err != nil {
		t.Fatalf("info command failed: %v", err)
	}

	output := buf.String()
	wantLines := []string{
		"webint System Information",
		fmt.Sprintf("Platform:          %s/%s", runtime.GOOS, runtime.GOARCH),
		"Configuration File:",
		"Effective Scan Defaults:",
		"Probe timeout:   10s",
		"DNS timeout:     5s",
		"Deep mode:       false",
		"Nameservers:",
		"(built-in)",
		"GeoIP endpoint:  (not configured)",
		"~/.webint.yaml",
	}
	for _, want := range wantLines {
		if !strings.Contains(output, want) {
			t.Errorf("expected info output to contain %q\n%s", want, output)
		}
	}
}

func TestInfoCommandReflectsConfig(t *testing.T) {
	resetScanFlags(t)

	cliConfig.Scan.DNS.Nameservers = []string{"10.0.0.53:53"}
	cliConfig.Scan.GeoEndpoint = "http://geo.internal/json/"

	var buf bytes.Buffer
	infoCmd.SetOut(&buf)
	t.Cleanup(func() { infoCmd.SetOut(nil) })

	if err := infoCmd.RunE(infoCmd, []string{}); err != nil {
		t.Fatalf("info command failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Nameservers:     10.0.0.53:53") {
		t.Errorf("expected configured nameservers, got\n%s", output)
	}
	if strings.Contains(output, "(built-in)") {
		t.Errorf("expected no built-in marker when nameservers are set, got\n%s", output)
	}
	if !strings.Contains(output, "GeoIP endpoint:  http://geo.internal/json/") {
		t.Errorf("expected configured geo endpoint, got\n%s", output)
	}
}
