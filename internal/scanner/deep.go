package scanner

import (
	"bytes"
	"crypto/sha1" // #nosec G505 -- favicon fingerprint, not a security primitive
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	wappalyzer "github.com/projectdiscovery/wappalyzergo"
	"github.com/spaolacci/murmur3"
)

// DeepResult carries the artifacts of deep mode: DOM-extracted hints, the
// favicon hashes, and the extended technology set. All fields are optional;
// the report boundary substitutes sentinels for what is missing.
type DeepResult struct {
	MetaGenerator string
	ScriptSources []string
	FaviconSHA1   string
	FaviconMMH3   string
	Technologies  []string
}

// ExtractScriptSources collects the src attribute of every script tag, in
// document order, without duplicates.
func ExtractScriptSources(body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var sources []string
	doc.Find("script[src]").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			return
		}
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		sources = append(sources, src)
	})
	return sources
}

// ExtractMetaGenerator returns the content of the meta generator tag, the
// most direct self-declaration a CMS makes ("WordPress 6.4.2").
func ExtractMetaGenerator(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	content, _ := doc.Find(`meta[name="generator"]`).First().Attr("content")
	return strings.TrimSpace(content)
}

// FaviconHashes computes the two favicon fingerprints used for pivoting:
// plain SHA-1 of the bytes, and the Shodan-style mmh3 of the MIME base64
// encoding (wrapped at 76 columns with a trailing newline, matching what
// `http.favicon.hash` expects).
func FaviconHashes(data []byte) (sha1Hex string, mmh3Hash string) {
	sum := sha1.Sum(data) // #nosec G401 -- favicon fingerprint, not a security primitive
	sha1Hex = hex.EncodeToString(sum[:])

	encoded := base64.StdEncoding.EncodeToString(data)
	var wrapped bytes.Buffer
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		wrapped.WriteString(encoded[i:end])
		wrapped.WriteByte('\n')
	}

	mmh3Hash = strconv.Itoa(int(int32(murmur3.Sum32(wrapped.Bytes()))))
	return sha1Hex, mmh3Hash
}

// DetectFromScriptSources runs the JS-framework signatures over the script
// URLs alone. Frameworks loaded from CDNs often only reveal themselves in
// the src path.
func DetectFromScriptSources(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}
	return matchAll(jsFrameworkSignatures, []byte(strings.Join(sources, "\n")))
}

// MergeTechnologies unions technology name sets into one sorted list.
func MergeTechnologies(groups ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, group := range groups {
		for _, name := range group {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	return merged
}

// The wappalyzer fingerprint database is parsed once per process; it is a
// few megabytes of embedded JSON.
var (
	wappalyzeOnce   sync.Once
	wappalyzeClient *wappalyzer.Wappalyze
	wappalyzeErr    error
)

// DetectTechnologies runs the wappalyzer fingerprint set against the
// response. The result is a sorted list of technology names.
func DetectTechnologies(headers http.Header, body []byte) ([]string, error) {
	wappalyzeOnce.Do(func() {
		wappalyzeClient, wappalyzeErr = wappalyzer.New()
	})
	if wappalyzeErr != nil {
		return nil, wappalyzeErr
	}

	matches := wappalyzeClient.Fingerprint(headers, body)
	technologies := make([]string, 0, len(matches))
	for name := range matches {
		technologies = append(technologies, name)
	}
	sort.Strings(technologies)
	return technologies, nil
}
