package scanner

import "regexp"

// Signature pairs a technology label with the pattern that detects it.
type Signature struct {
	Label   string
	Pattern *regexp.Regexp
}

// Category names for the signature tables, as they appear in listings.
const (
	CategoryLanguage    = "language"
	CategoryCMS         = "cms"
	CategoryJSFramework = "javascript"
	CategoryAnalytics   = "analytics"
)

// The tables below are the whole detection model: ordered (label, pattern)
// rows consumed by a generic matcher. Order matters twice over. In the
// single-winner categories (language, cms, analytics) the first matching row
// wins, and in the accumulate category (javascript) result order follows row
// order. Adding a detector means adding a row, nothing else.

// languageSignatures detect server-side languages from file-extension
// literals inside quoted attributes. Extensions are matched case-sensitively;
// markup conventionally lowercases them.
var languageSignatures = []Signature{
	{Label: "PHP", Pattern: regexp.MustCompile(`\.php["']`)},
	{Label: "ASP.NET", Pattern: regexp.MustCompile(`\.aspx["']`)},
	{Label: "Java", Pattern: regexp.MustCompile(`\.jsp["']`)},
	{Label: "Python", Pattern: regexp.MustCompile(`\.py["']`)},
}

var cmsSignatures = []Signature{
	{Label: "WordPress", Pattern: regexp.MustCompile(`(?i)wp-content|wp-includes|wordpress`)},
	{Label: "Drupal", Pattern: regexp.MustCompile(`(?i)drupal|sites/default`)},
	{Label: "Joomla", Pattern: regexp.MustCompile(`(?i)joomla|option=com_`)},
	{Label: "Magento", Pattern: regexp.MustCompile(`(?i)magento|mage/js`)},
	{Label: "Shopify", Pattern: regexp.MustCompile(`(?i)shopify|cdn\.shopify`)},
}

var jsFrameworkSignatures = []Signature{
	{Label: "React", Pattern: regexp.MustCompile(`(?i)react|reactjs`)},
	{Label: "Vue.js", Pattern: regexp.MustCompile(`(?i)vue\.js|vuejs`)},
	{Label: "Angular", Pattern: regexp.MustCompile(`(?i)angular|ng-`)},
	{Label: "jQuery", Pattern: regexp.MustCompile(`(?i)jquery`)},
}

var analyticsSignatures = []Signature{
	{Label: "Google Analytics", Pattern: regexp.MustCompile(`(?i)google-analytics|gtag|ga\(`)},
	{Label: "Google Tag Manager", Pattern: regexp.MustCompile(`(?i)googletagmanager`)},
	{Label: "Facebook Pixel", Pattern: regexp.MustCompile(`(?i)facebook\.net/tr|fbq\(`)},
	{Label: "Hotjar", Pattern: regexp.MustCompile(`(?i)hotjar`)},
}

// CatalogEntry is a read-only view of one signature row for listings.
type CatalogEntry struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Pattern  string `json:"pattern"`
}

// Catalog returns every signature table flattened in evaluation order.
// The returned slice is a copy and safe to modify.
func Catalog() []CatalogEntry {
	tables := []struct {
		category   string
		signatures []Signature
	}{
		{CategoryLanguage, languageSignatures},
		{CategoryCMS, cmsSignatures},
		{CategoryJSFramework, jsFrameworkSignatures},
		{CategoryAnalytics, analyticsSignatures},
	}

	entries := make([]CatalogEntry, 0, len(languageSignatures)+len(cmsSignatures)+len(jsFrameworkSignatures)+len(analyticsSignatures))
	for _, table := range tables {
		for _, sig := range table.signatures {
			entries = append(entries, CatalogEntry{
				Category: table.category,
				Label:    sig.Label,
				Pattern:  sig.Pattern.String(),
			})
		}
	}
	return entries
}
