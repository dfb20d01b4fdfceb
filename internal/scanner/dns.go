package scanner

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"

	consts "github.com/khanhnv2901/webint/internal/shared/constants"
	errs "github.com/khanhnv2901/webint/internal/shared/errors"
)

// DNSResult aggregates the three independent DNS sub-lookups. An empty field
// means that sub-lookup failed; Notes records each failure without touching
// the other fields.
type DNSResult struct {
	Address     string
	NameServers []string
	DNSSEC      string // Enabled, Disabled, or empty when undetermined
	Notes       []string
}

// DNSProber resolves the target's address, authoritative name servers, and
// DNSSEC posture.
type DNSProber struct {
	Timeout     time.Duration
	Nameservers []string // Recursors in fallback order; public defaults apply when empty
}

// Lookup runs the address, NS, and DNSKEY sub-lookups against host. Each is
// independently fallible: a failure adds a note and leaves its field empty
// for the report boundary to replace with its sentinel.
func (p *DNSProber) Lookup(ctx context.Context, host string) *DNSResult {
	result := &DNSResult{}

	lookupCtx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	if addr, err := p.lookupAddress(lookupCtx, host); err != nil {
		result.Notes = append(result.Notes, fmt.Sprintf("address lookup failed: %v", err))
	} else {
		result.Address = addr
	}

	lookupCtx2, cancel2 := context.WithTimeout(ctx, p.timeout())
	defer cancel2()

	if servers, err := p.lookupNameServers(lookupCtx2, host); err != nil {
		result.Notes = append(result.Notes, fmt.Sprintf("ns lookup failed: %v", err))
	} else {
		result.NameServers = servers
	}

	lookupCtx3, cancel3 := context.WithTimeout(ctx, p.timeout())
	defer cancel3()

	if state, err := p.lookupDNSSEC(lookupCtx3, host); err != nil {
		result.Notes = append(result.Notes, fmt.Sprintf("dnssec check failed: %v", err))
	} else {
		result.DNSSEC = state
	}

	return result
}

func (p *DNSProber) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return consts.DefaultDNSTimeout
}

func (p *DNSProber) recursors() []string {
	if len(p.Nameservers) > 0 {
		return p.Nameservers
	}
	return consts.DefaultRecursors
}

// lookupAddress resolves one representative address for host using the Go
// resolver. Custom recursors redirect the resolver's dial to the first one.
func (p *DNSProber) lookupAddress(ctx context.Context, host string) (string, error) {
	resolver := &net.Resolver{PreferGo: true}

	if len(p.Nameservers) > 0 {
		dialer := &net.Dialer{Timeout: p.timeout()}
		recursor := p.Nameservers[0]
		resolver.Dial = func(ctx context.Context, network, address string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, recursor)
		}
	}

	addrs, err := resolver.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", errs.ErrNoRecords
	}
	return addrs[0], nil
}

// lookupNameServers queries the recursors for NS records and falls back to
// the external nslookup utility when every recursor fails, which keeps the
// category alive on networks that block direct DNS.
func (p *DNSProber) lookupNameServers(ctx context.Context, host string) ([]string, error) {
	servers, err := p.queryNS(ctx, host)
	if err == nil {
		return servers, nil
	}

	servers, extErr := externalNSLookup(ctx, host)
	if extErr != nil {
		return nil, fmt.Errorf("ns query: %v (nslookup fallback: %v)", err, extErr)
	}
	return servers, nil
}

func (p *DNSProber) queryNS(ctx context.Context, host string) ([]string, error) {
	client := &dns.Client{Timeout: p.timeout()}
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeNS)
	msg.RecursionDesired = true

	var lastErr error
	for _, recursor := range p.recursors() {
		in, _, err := client.ExchangeContext(ctx, msg, recursor)
		if err != nil {
			lastErr = err
			continue
		}

		var servers []string
		for _, rr := range in.Answer {
			if ns, ok := rr.(*dns.NS); ok {
				servers = append(servers, strings.TrimSuffix(ns.Ns, "."))
			}
		}
		if len(servers) == 0 {
			lastErr = errs.ErrNoRecords
			continue
		}

		// Answer order is not stable across recursors; sort for a
		// deterministic report.
		sort.Strings(servers)
		return servers, nil
	}
	return nil, lastErr
}

// lookupDNSSEC reports Enabled when the zone publishes a DNSKEY record and
// Disabled on a clean answer without one.
func (p *DNSProber) lookupDNSSEC(ctx context.Context, host string) (string, error) {
	client := &dns.Client{Timeout: p.timeout()}
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeDNSKEY)
	msg.RecursionDesired = true

	var lastErr error
	for _, recursor := range p.recursors() {
		in, _, err := client.ExchangeContext(ctx, msg, recursor)
		if err != nil {
			lastErr = err
			continue
		}

		for _, rr := range in.Answer {
			if _, ok := rr.(*dns.DNSKEY); ok {
				return Enabled, nil
			}
		}
		return Disabled, nil
	}
	return "", lastErr
}

// externalNSLookup shells out to nslookup as a last-resort NS source.
func externalNSLookup(ctx context.Context, host string) ([]string, error) {
	if _, err := exec.LookPath("nslookup"); err != nil {
		return nil, errs.ErrNoExternalTool
	}

	cmd := exec.CommandContext(ctx, "nslookup", "-type=ns", host) // #nosec G204 -- fixed argv, host comes from the parsed target
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("run nslookup: %w", err)
	}

	servers := parseNSLookupOutput(string(output))
	if len(servers) == 0 {
		return nil, errs.ErrNoRecords
	}
	sort.Strings(servers)
	return servers, nil
}

// parseNSLookupOutput extracts name-server hosts from `nslookup -type=ns`
// output. Matching lines carry "nameserver" and end with the host, which may
// have a trailing dot.
func parseNSLookupOutput(output string) []string {
	var servers []string
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(strings.ToLower(line), "nameserver") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		servers = append(servers, strings.TrimSuffix(fields[len(fields)-1], "."))
	}
	return servers
}
