package cmd

import (
	"testing"

	"github.com/fatih/color"
)

func TestFormatStatusWithColor(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})

	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "enabled", status: "Enabled", want: "Enabled"},
		{name: "disabled", status: "Disabled", want: "Disabled"},
		{name: "unknown sentinel", status: "Unknown", want: "Unknown"},
		{name: "none detected sentinel", status: "None detected", want: "None detected"},
		{name: "plain value", status: "nginx", want: "nginx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatStatusWithColor(tt.status); got != tt.want {
				t.Fatalf("formatStatusWithColor(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestFormatGradeWithColor(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})

	for _, grade := range []string{"A", "C", "F", "Unknown"} {
		if got := formatGradeWithColor(grade); got != grade {
			t.Fatalf("formatGradeWithColor(%q) = %q, want passthrough", grade, got)
		}
	}
}
