package scanner

import (
	"net/http"
	"strings"
)

// FingerprintResult holds one classification per technology category.
// JSFrameworks is a set: every matching framework accumulates, in catalog
// order. The other categories are single winners.
type FingerprintResult struct {
	WebServer    string
	Language     string
	CMS          string
	JSFrameworks []string
	Analytics    string
}

// Fingerprint classifies a response against the signature catalog. It is a
// pure function of its inputs and performs no network access, so callers can
// run it on a shared fetched response or on canned data.
func Fingerprint(headers http.Header, body []byte) FingerprintResult {
	return FingerprintResult{
		WebServer:    detectWebServer(headers),
		Language:     detectLanguage(headers, body),
		CMS:          detectCMS(body),
		JSFrameworks: detectJSFrameworks(body),
		Analytics:    detectAnalytics(body),
	}
}

// detectWebServer reduces the Server header to the product name before the
// first "/" ("nginx/1.18.0" reports as "nginx").
func detectWebServer(headers http.Header) string {
	server := headers.Get("Server")
	if server == "" {
		return Unknown
	}
	return strings.SplitN(server, "/", 2)[0]
}

// detectLanguage prefers the X-Powered-By header, which names the runtime
// outright, over body heuristics. The header check is an exact substring
// match; the body patterns look for extension literals in link targets.
func detectLanguage(headers http.Header, body []byte) string {
	poweredBy := headers.Get("X-Powered-By")
	if strings.Contains(poweredBy, "PHP") {
		return "PHP"
	}
	if strings.Contains(poweredBy, "ASP.NET") {
		return "ASP.NET"
	}

	if label, ok := matchFirst(languageSignatures, body); ok {
		return label
	}
	return Unknown
}

func detectCMS(body []byte) string {
	if label, ok := matchFirst(cmsSignatures, body); ok {
		return label
	}
	return CustomUnknown
}

func detectJSFrameworks(body []byte) []string {
	return matchAll(jsFrameworkSignatures, body)
}

func detectAnalytics(body []byte) string {
	if label, ok := matchFirst(analyticsSignatures, body); ok {
		return label
	}
	return NoneDetected
}

// matchFirst returns the label of the first signature whose pattern matches.
func matchFirst(signatures []Signature, body []byte) (string, bool) {
	for _, sig := range signatures {
		if sig.Pattern.Match(body) {
			return sig.Label, true
		}
	}
	return "", false
}

// matchAll returns the labels of every matching signature in table order.
func matchAll(signatures []Signature, body []byte) []string {
	var labels []string
	for _, sig := range signatures {
		if sig.Pattern.Match(body) {
			labels = append(labels, sig.Label)
		}
	}
	return labels
}
