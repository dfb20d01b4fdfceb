package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatStatusWithColor(status string) string {
	switch strings.ToLower(status) {
	case "enabled", "ok", "success":
		return colorSuccess(status)
	case "disabled", "error", "fail", "failed":
		return colorError(status)
	case "unknown", "none detected", "custom/unknown":
		return colorWarn(status)
	default:
		return status
	}
}

func formatGradeWithColor(grade string) string {
	switch strings.ToUpper(grade) {
	case "A", "B":
		return colorSuccess(grade)
	case "C", "D":
		return colorWarn(grade)
	case "E", "F":
		return colorError(grade)
	default:
		return colorWarn(grade)
	}
}
