package scanner

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// securityHeaderNames is the allow-list of response headers reported under
// security_headers, in report order.
var securityHeaderNames = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Frame-Options",
	"X-Content-Type-Options",
	"X-XSS-Protection",
	"Referrer-Policy",
}

// cachingHeaderNames are the headers whose presence counts as caching.
var cachingHeaderNames = []string{
	"Cache-Control",
	"Expires",
	"ETag",
	"Last-Modified",
}

// HeaderAnalysis is the header-derived slice of a report: declared security
// posture plus the coarse compression and caching toggles.
type HeaderAnalysis struct {
	SecurityHeaders map[string]string
	HSTSEnabled     bool
	CSPEnabled      bool
	Grade           string
	Compression     string
	Caching         string
}

// AnalyzeHeaders inspects the headers of a fetched response. Pure function;
// probe failures never reach it because the report builder substitutes the
// category defaults before this runs.
func AnalyzeHeaders(headers http.Header) HeaderAnalysis {
	present := make(map[string]string)
	for _, name := range securityHeaderNames {
		if value := headers.Get(name); value != "" {
			present[name] = value
		}
	}

	compression := Disabled
	if headers.Get("Content-Encoding") != "" {
		compression = Enabled
	}

	caching := Disabled
	for _, name := range cachingHeaderNames {
		if headers.Get(name) != "" {
			caching = Enabled
			break
		}
	}

	_, hsts := present["Strict-Transport-Security"]
	_, csp := present["Content-Security-Policy"]

	return HeaderAnalysis{
		SecurityHeaders: present,
		HSTSEnabled:     hsts,
		CSPEnabled:      csp,
		Grade:           headerGrade(len(present), len(securityHeaderNames)),
		Compression:     compression,
		Caching:         caching,
	}
}

// headerGrade converts allow-list coverage to a letter grade.
func headerGrade(present, max int) string {
	percentage := float64(present) / float64(max) * 100

	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	case percentage >= 50:
		return "E"
	default:
		return "F"
	}
}

// FormatResponseTime renders an elapsed duration as milliseconds with two
// decimals ("123.45ms").
func FormatResponseTime(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}

// FormatPageSize converts a Content-Length header value to kilobytes with
// two decimals ("2.00 KB"). Absent or non-numeric lengths report Unknown;
// chunked responses carry no Content-Length and land here too.
func FormatPageSize(contentLength string) string {
	n, err := strconv.Atoi(contentLength)
	if err != nil || n < 0 {
		return Unknown
	}
	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}
