package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/khanhnv2901/webint/internal/scanner"
)

// renderEnvelope prints a colored human-readable view of a scan envelope.
// The JSON document stays the canonical output; this is the --pretty path.
func renderEnvelope(w io.Writer, envelope *scanner.Envelope) {
	if envelope == nil {
		return
	}
	if !envelope.Success || envelope.Data == nil {
		fmt.Fprintf(w, "%s %s\n", colorError("Scan failed:"), envelope.Error)
		return
	}

	data := envelope.Data

	fmt.Fprintf(w, "%s %s\n", colorInfo("Scan report for"), data.BasicInfo.URL)
	fmt.Fprintf(w, "Scanned at: %s\n", envelope.ScanTime)

	fmt.Fprintf(w, "\n%s\n", colorInfo("Basic"))
	tw := newSectionWriter(w)
	fmt.Fprintf(tw, "  Domain:\t%s\n", data.BasicInfo.Domain)
	fmt.Fprintf(tw, "  Status code:\t%v\n", data.BasicInfo.StatusCode)
	fmt.Fprintf(tw, "  Protocol:\t%s\n", data.BasicInfo.Protocol)
	fmt.Fprintf(tw, "  Port:\t%d\n", data.BasicInfo.Port)
	tw.Flush()

	fmt.Fprintf(w, "\n%s\n", colorInfo("Server"))
	tw = newSectionWriter(w)
	fmt.Fprintf(tw, "  IP address:\t%s\n", data.ServerInfo.IPAddress)
	fmt.Fprintf(tw, "  Server:\t%s\n", data.ServerInfo.Server)
	fmt.Fprintf(tw, "  Location:\t%s\n", data.ServerInfo.Location)
	fmt.Fprintf(tw, "  City:\t%s\n", data.ServerInfo.City)
	fmt.Fprintf(tw, "  ISP:\t%s\n", data.ServerInfo.ISP)
	tw.Flush()

	fmt.Fprintf(w, "\n%s\n", colorInfo("Domain"))
	tw = newSectionWriter(w)
	fmt.Fprintf(tw, "  Registrar:\t%s\n", data.DomainInfo.Registrar)
	fmt.Fprintf(tw, "  Created:\t%s\n", data.DomainInfo.CreationDate)
	fmt.Fprintf(tw, "  Expires:\t%s\n", data.DomainInfo.ExpiryDate)
	fmt.Fprintf(tw, "  Name servers:\t%s\n", data.DomainInfo.NameServers)
	fmt.Fprintf(tw, "  DNSSEC:\t%s\n", formatStatusWithColor(data.DomainInfo.DNSSEC))
	tw.Flush()

	renderSecurity(w, data.SecurityInfo)

	fmt.Fprintf(w, "\n%s\n", colorInfo("Performance"))
	tw = newSectionWriter(w)
	fmt.Fprintf(tw, "  Response time:\t%s\n", data.PerformanceInfo.ResponseTime)
	fmt.Fprintf(tw, "  Compression:\t%s\n", formatStatusWithColor(data.PerformanceInfo.Compression))
	fmt.Fprintf(tw, "  Caching:\t%s\n", formatStatusWithColor(data.PerformanceInfo.Caching))
	fmt.Fprintf(tw, "  Page size:\t%s\n", data.PerformanceInfo.PageSize)
	tw.Flush()

	renderTechnology(w, data.TechnologyInfo)
}

func renderSecurity(w io.Writer, info scanner.SecurityInfo) {
	fmt.Fprintf(w, "\n%s\n", colorInfo("Security"))
	tw := newSectionWriter(w)

	cert := info.SSLCertificate
	if cert.Enabled {
		fmt.Fprintf(tw, "  SSL:\t%s\n", colorSuccess(scanner.Enabled))
		fmt.Fprintf(tw, "  Issuer:\t%s\n", cert.Issuer)
		fmt.Fprintf(tw, "  Subject:\t%s\n", cert.Subject)
		fmt.Fprintf(tw, "  Valid from:\t%s\n", cert.ValidFrom)
		fmt.Fprintf(tw, "  Valid to:\t%s\n", cert.ValidTo)
	} else {
		fmt.Fprintf(tw, "  SSL:\t%s\n", colorError(scanner.Disabled))
		fmt.Fprintf(tw, "  Note:\t%s\n", cert.Message)
	}

	fmt.Fprintf(tw, "  HSTS:\t%s\n", formatStatusWithColor(enabledWord(info.HSTSEnabled)))
	fmt.Fprintf(tw, "  CSP:\t%s\n", formatStatusWithColor(enabledWord(info.ContentSecurityPolicy)))
	fmt.Fprintf(tw, "  Header grade:\t%s\n", formatGradeWithColor(info.HeaderGrade))
	tw.Flush()

	if len(info.SecurityHeaders) > 0 {
		names := make([]string, 0, len(info.SecurityHeaders))
		for name := range info.SecurityHeaders {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(w, "  Declared headers (%d):\n", len(names))
		tw = newSectionWriter(w)
		for _, name := range names {
			fmt.Fprintf(tw, "    %s:\t%s\n", name, info.SecurityHeaders[name])
		}
		tw.Flush()
	}
}

func renderTechnology(w io.Writer, info scanner.TechnologyInfo) {
	fmt.Fprintf(w, "\n%s\n", colorInfo("Technology"))
	tw := newSectionWriter(w)
	fmt.Fprintf(tw, "  Web server:\t%s\n", info.WebServer)
	fmt.Fprintf(tw, "  Language:\t%s\n", info.ProgrammingLanguage)
	fmt.Fprintf(tw, "  CMS:\t%s\n", info.CMS)
	fmt.Fprintf(tw, "  JS frameworks:\t%s\n", info.JavaScriptFrameworks)
	fmt.Fprintf(tw, "  Analytics:\t%s\n", info.Analytics)
	fmt.Fprintf(tw, "  Meta generator:\t%s\n", info.MetaGenerator)
	fmt.Fprintf(tw, "  Favicon SHA1:\t%s\n", info.FaviconSHA1)
	fmt.Fprintf(tw, "  Favicon MMH3:\t%s\n", info.FaviconMMH3)
	if len(info.DetectedTechnologies) > 0 {
		fmt.Fprintf(tw, "  Detected:\t%s\n", strings.Join(info.DetectedTechnologies, ", "))
	} else {
		fmt.Fprintf(tw, "  Detected:\t%s\n", scanner.NoneDetected)
	}
	tw.Flush()
}

func newSectionWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
}

func enabledWord(on bool) string {
	if on {
		return scanner.Enabled
	}
	return scanner.Disabled
}
