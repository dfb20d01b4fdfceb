package scanner

import (
	"context"
	"crypto/x509"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	consts "github.com/khanhnv2901/webint/internal/shared/constants"
)

// Config carries the scan-wide settings shared by the CLI and the API
// server. Zero values fall back to the package defaults.
type Config struct {
	Timeout     time.Duration // Per-probe budget
	DNSTimeout  time.Duration // Per DNS sub-lookup budget
	UserAgent   string
	RateLimit   int // Outbound requests per second
	Nameservers []string
	GeoEndpoint string // URL template for the geolocation collaborator
	Deep        bool
	RootCAs     *x509.CertPool // Extra trust roots for fetch and TLS probes
	Logger      *zap.SugaredLogger
}

// Scanner joins the independent probes into one report. It performs no
// network I/O itself; all of that lives in the probes and the geolocation
// client it owns.
type Scanner struct {
	cfg     Config
	fetcher *FetchProber
	tls     *TLSProber
	dns     *DNSProber
	geo     *GeoClient
	logger  *zap.SugaredLogger
}

// New builds a Scanner from cfg, applying defaults for unset fields. One
// outbound rate limiter is shared by the fetch, favicon, and geolocation
// requests.
func New(cfg Config) *Scanner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = consts.DefaultProbeTimeout
	}
	if cfg.DNSTimeout <= 0 {
		cfg.DNSTimeout = consts.DefaultDNSTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = consts.DefaultUserAgent
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = consts.DefaultRateLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)

	return &Scanner{
		cfg: cfg,
		fetcher: &FetchProber{
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
			Limiter:   limiter,
			RootCAs:   cfg.RootCAs,
		},
		tls:    &TLSProber{Timeout: cfg.Timeout, RootCAs: cfg.RootCAs},
		dns:    &DNSProber{Timeout: cfg.DNSTimeout, Nameservers: cfg.Nameservers},
		geo:    &GeoClient{Endpoint: cfg.GeoEndpoint, Timeout: cfg.Timeout, Limiter: limiter},
		logger: logger,
	}
}

// Scan probes rawURL and assembles the report envelope. The only fatal input
// is a target that does not parse; every probe failure degrades to that
// category's defaults and the scan still succeeds.
func (s *Scanner) Scan(ctx context.Context, rawURL string) *Envelope {
	target, err := ParseTarget(rawURL)
	if err != nil {
		s.logger.Warnw("target rejected", "target", rawURL, "error", err)
		return NewErrorEnvelope(err)
	}

	// The three probes share nothing and write disjoint locals, joined at
	// the barrier below.
	var (
		wg        sync.WaitGroup
		fetch     *FetchResult
		fetchErr  error
		cert      *CertResult
		dnsResult *DNSResult
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		fetch, fetchErr = s.fetcher.Fetch(ctx, target)
	}()
	go func() {
		defer wg.Done()
		cert = s.tls.Inspect(ctx, target)
	}()
	go func() {
		defer wg.Done()
		dnsResult = s.dns.Lookup(ctx, target.Host)
	}()
	wg.Wait()

	if fetchErr != nil {
		s.logger.Debugw("fetch probe degraded", "target", target.Host, "error", fetchErr)
		fetch = nil
	}
	for _, note := range dnsResult.Notes {
		s.logger.Debugw("dns probe degraded", "target", target.Host, "note", note)
	}

	// Geolocation needs the resolved address, so it runs after the join.
	var geo *GeoInfo
	if dnsResult.Address != "" {
		if info, err := s.geo.Lookup(ctx, dnsResult.Address); err != nil {
			s.logger.Debugw("geolocation degraded", "address", dnsResult.Address, "error", err)
		} else {
			geo = info
		}
	}

	headers := http.Header{}
	var body []byte
	var analysis *HeaderAnalysis
	if fetch != nil {
		headers = fetch.Headers
		body = fetch.Body
		a := AnalyzeHeaders(fetch.Headers)
		analysis = &a
	}
	fp := Fingerprint(headers, body)

	var deep *DeepResult
	if s.cfg.Deep && fetch != nil {
		deep = s.deepAnalyze(ctx, fetch)
	}

	report := &Report{
		BasicInfo:       buildBasicInfo(target, fetch),
		ServerInfo:      buildServerInfo(fetch, dnsResult, geo),
		DomainInfo:      buildDomainInfo(dnsResult),
		SecurityInfo:    buildSecurityInfo(analysis, cert),
		PerformanceInfo: buildPerformanceInfo(fetch, analysis),
		TechnologyInfo:  buildTechnologyInfo(fp, deep),
	}
	return NewEnvelope(report)
}

// deepAnalyze collects the optional deep-mode artifacts from the already
// fetched response, plus one favicon request.
func (s *Scanner) deepAnalyze(ctx context.Context, fetch *FetchResult) *DeepResult {
	deep := &DeepResult{
		MetaGenerator: ExtractMetaGenerator(fetch.Body),
		ScriptSources: ExtractScriptSources(fetch.Body),
	}

	if technologies, err := DetectTechnologies(fetch.Headers, fetch.Body); err != nil {
		s.logger.Debugw("technology fingerprinting degraded", "error", err)
	} else {
		deep.Technologies = technologies
	}

	if icon, err := s.fetcher.Favicon(ctx, fetch.FinalURL); err != nil {
		s.logger.Debugw("favicon fetch degraded", "error", err)
	} else {
		deep.FaviconSHA1, deep.FaviconMMH3 = FaviconHashes(icon)
	}
	return deep
}
