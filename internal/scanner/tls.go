package scanner

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"time"

	consts "github.com/khanhnv2901/webint/internal/shared/constants"
	errs "github.com/khanhnv2901/webint/internal/shared/errors"
)

// CertResult describes the target's TLS posture. When Enabled is false,
// Message carries the cause (non-https scheme, or the dial/handshake error);
// the probe never surfaces an error value. Validity timestamps are RFC 3339.
type CertResult struct {
	Enabled   bool
	Issuer    string
	Subject   string
	NotBefore string
	NotAfter  string
	Message   string
}

// TLSProber inspects the target's certificate over a fresh handshake.
type TLSProber struct {
	Timeout time.Duration
	RootCAs *x509.CertPool // Optional extra trust roots, mainly for local endpoints
}

// Inspect dials the target and reports the first peer certificate. Targets
// without an https scheme short-circuit to a disabled result before any
// socket is opened.
func (p *TLSProber) Inspect(ctx context.Context, target *Target) *CertResult {
	if !target.IsTLS() {
		return &CertResult{Enabled: false, Message: "SSL not enabled"}
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultProbeTimeout
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config: &tls.Config{
			ServerName: target.Host,
			RootCAs:    p.RootCAs,
		},
	}

	conn, err := dialer.DialContext(dialCtx, "tcp", target.Address())
	if err != nil {
		return &CertResult{Enabled: false, Message: fmt.Sprintf("SSL error: %v", err)}
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return &CertResult{Enabled: false, Message: fmt.Sprintf("SSL error: %v", errs.ErrNoCertificate)}
	}

	cert := state.PeerCertificates[0]
	return &CertResult{
		Enabled:   true,
		Issuer:    orUnknown(cert.Issuer.CommonName),
		Subject:   orUnknown(cert.Subject.CommonName),
		NotBefore: cert.NotBefore.Format(time.RFC3339),
		NotAfter:  cert.NotAfter.Format(time.RFC3339),
	}
}
