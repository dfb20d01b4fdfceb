package scanner

import (
	"strings"
	"time"
)

// Sentinel values for degraded or undetected fields. The report schema never
// drops a field; these stand in wherever a probe came back empty-handed.
const (
	Unknown       = "Unknown"
	NoneDetected  = "None detected"
	CustomUnknown = "Custom/Unknown"
	Enabled       = "Enabled"
	Disabled      = "Disabled"
)

// Envelope is the top-level JSON document printed for every scan. Success
// with Data and ScanTime, or the sole fatal path with Error.
type Envelope struct {
	Success  bool    `json:"success"`
	Data     *Report `json:"data,omitempty"`
	Error    string  `json:"error,omitempty"`
	ScanTime string  `json:"scan_time,omitempty"`
}

// Report is the fixed-shape scan report: six sections, each independently
// populated and independently degraded.
type Report struct {
	BasicInfo       BasicInfo       `json:"basic_info"`
	ServerInfo      ServerInfo      `json:"server_info"`
	DomainInfo      DomainInfo      `json:"domain_info"`
	SecurityInfo    SecurityInfo    `json:"security_info"`
	PerformanceInfo PerformanceInfo `json:"performance_info"`
	TechnologyInfo  TechnologyInfo  `json:"technology_info"`
}

// BasicInfo describes the target as parsed plus the fetch status.
type BasicInfo struct {
	URL        string      `json:"url"`
	Domain     string      `json:"domain"`
	StatusCode interface{} `json:"status_code"` // int on success, "Unknown" otherwise
	Protocol   string      `json:"protocol"`
	Port       int         `json:"port"`
}

// ServerInfo describes the serving infrastructure.
type ServerInfo struct {
	IPAddress string `json:"ip_address"`
	Server    string `json:"server"`
	Location  string `json:"location"`
	City      string `json:"city"`
	ISP       string `json:"isp"`
}

// DomainInfo describes registration and DNS posture. Registrar data stays
// stubbed; authoritative WHOIS is out of scope.
type DomainInfo struct {
	Registrar    string `json:"registrar"`
	CreationDate string `json:"creation_date"`
	ExpiryDate   string `json:"expiry_date"`
	NameServers  string `json:"name_servers"`
	DNSSEC       string `json:"dnssec"`
}

// SSLCertificate mirrors the TLS probe outcome. On success the validity
// fields are set and Message is absent; when disabled only Message explains
// why.
type SSLCertificate struct {
	Enabled   bool   `json:"enabled"`
	Issuer    string `json:"issuer,omitempty"`
	Subject   string `json:"subject,omitempty"`
	ValidFrom string `json:"valid_from,omitempty"`
	ValidTo   string `json:"valid_to,omitempty"`
	Message   string `json:"message,omitempty"`
}

// SecurityInfo combines the TLS posture with the declared security headers.
type SecurityInfo struct {
	SSLCertificate        SSLCertificate    `json:"ssl_certificate"`
	SecurityHeaders       map[string]string `json:"security_headers"`
	HSTSEnabled           bool              `json:"hsts_enabled"`
	ContentSecurityPolicy bool              `json:"content_security_policy"`
	HeaderGrade           string            `json:"header_grade"`
}

// PerformanceInfo carries the coarse performance characteristics.
type PerformanceInfo struct {
	ResponseTime string `json:"response_time"`
	Compression  string `json:"compression"`
	Caching      string `json:"caching"`
	PageSize     string `json:"page_size"`
}

// TechnologyInfo is the fingerprint engine's classification plus the deep
// mode extras.
type TechnologyInfo struct {
	WebServer            string   `json:"web_server"`
	ProgrammingLanguage  string   `json:"programming_language"`
	CMS                  string   `json:"cms"`
	JavaScriptFrameworks string   `json:"javascript_frameworks"`
	Analytics            string   `json:"analytics"`
	MetaGenerator        string   `json:"meta_generator"`
	FaviconSHA1          string   `json:"favicon_sha1"`
	FaviconMMH3          string   `json:"favicon_mmh3"`
	DetectedTechnologies []string `json:"detected_technologies"`
}

// NewEnvelope wraps a completed report with its timestamp.
func NewEnvelope(report *Report) *Envelope {
	return &Envelope{
		Success:  true,
		Data:     report,
		ScanTime: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewErrorEnvelope wraps the sole fatal path, a malformed target.
func NewErrorEnvelope(err error) *Envelope {
	return &Envelope{Success: false, Error: err.Error()}
}

func buildBasicInfo(target *Target, fetch *FetchResult) BasicInfo {
	var status interface{} = Unknown
	if fetch != nil {
		status = fetch.StatusCode
	}
	return BasicInfo{
		URL:        target.Original,
		Domain:     target.Host,
		StatusCode: status,
		Protocol:   target.Scheme,
		Port:       target.Port,
	}
}

func buildServerInfo(fetch *FetchResult, dnsResult *DNSResult, geo *GeoInfo) ServerInfo {
	info := ServerInfo{
		IPAddress: Unknown,
		Server:    Unknown,
		Location:  Unknown,
		City:      Unknown,
		ISP:       Unknown,
	}
	if dnsResult != nil && dnsResult.Address != "" {
		info.IPAddress = dnsResult.Address
	}
	if fetch != nil {
		if server := fetch.Headers.Get("Server"); server != "" {
			info.Server = server
		}
	}
	if geo != nil {
		info.Location = orUnknown(geo.Country)
		info.City = orUnknown(geo.City)
		info.ISP = orUnknown(geo.ISP)
	}
	return info
}

func buildDomainInfo(dnsResult *DNSResult) DomainInfo {
	info := DomainInfo{
		Registrar:    Unknown,
		CreationDate: Unknown,
		ExpiryDate:   Unknown,
		NameServers:  Unknown,
		DNSSEC:       Unknown,
	}
	if dnsResult != nil {
		if len(dnsResult.NameServers) > 0 {
			info.NameServers = strings.Join(dnsResult.NameServers, ", ")
		}
		if dnsResult.DNSSEC != "" {
			info.DNSSEC = dnsResult.DNSSEC
		}
	}
	return info
}

func buildSecurityInfo(analysis *HeaderAnalysis, cert *CertResult) SecurityInfo {
	info := SecurityInfo{
		SSLCertificate:  SSLCertificate{Enabled: false, Message: "SSL not enabled"},
		SecurityHeaders: map[string]string{},
		HeaderGrade:     Unknown,
	}
	if cert != nil {
		info.SSLCertificate = SSLCertificate{
			Enabled:   cert.Enabled,
			Issuer:    cert.Issuer,
			Subject:   cert.Subject,
			ValidFrom: cert.NotBefore,
			ValidTo:   cert.NotAfter,
			Message:   cert.Message,
		}
	}
	if analysis != nil {
		info.SecurityHeaders = analysis.SecurityHeaders
		info.HSTSEnabled = analysis.HSTSEnabled
		info.ContentSecurityPolicy = analysis.CSPEnabled
		info.HeaderGrade = analysis.Grade
	}
	return info
}

func buildPerformanceInfo(fetch *FetchResult, analysis *HeaderAnalysis) PerformanceInfo {
	if fetch == nil || analysis == nil {
		return PerformanceInfo{
			ResponseTime: Unknown,
			Compression:  Unknown,
			Caching:      Unknown,
			PageSize:     Unknown,
		}
	}
	return PerformanceInfo{
		ResponseTime: FormatResponseTime(fetch.Duration),
		Compression:  analysis.Compression,
		Caching:      analysis.Caching,
		PageSize:     FormatPageSize(fetch.Headers.Get("Content-Length")),
	}
}

func buildTechnologyInfo(fp FingerprintResult, deep *DeepResult) TechnologyInfo {
	info := TechnologyInfo{
		WebServer:            fp.WebServer,
		ProgrammingLanguage:  fp.Language,
		CMS:                  fp.CMS,
		JavaScriptFrameworks: Unknown,
		Analytics:            fp.Analytics,
		MetaGenerator:        Unknown,
		FaviconSHA1:          Unknown,
		FaviconMMH3:          Unknown,
		DetectedTechnologies: []string{},
	}
	if len(fp.JSFrameworks) > 0 {
		info.JavaScriptFrameworks = strings.Join(fp.JSFrameworks, ", ")
	}
	if deep != nil {
		if deep.MetaGenerator != "" {
			info.MetaGenerator = deep.MetaGenerator
		}
		if deep.FaviconSHA1 != "" {
			info.FaviconSHA1 = deep.FaviconSHA1
			info.FaviconMMH3 = deep.FaviconMMH3
		}
		if merged := MergeTechnologies(deep.Technologies, DetectFromScriptSources(deep.ScriptSources)); len(merged) > 0 {
			info.DetectedTechnologies = merged
		}
	}
	return info
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
