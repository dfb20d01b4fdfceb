package cmd

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"

	"github.com/khanhnv2901/webint/internal/scanner"
	consts "github.com/khanhnv2901/webint/internal/shared/constants"
)

const (
	htmlTemplatePath     = "templates/report.html"
	markdownTemplatePath = "templates/report.md"
)

//go:embed templates/report.html templates/report.md
var reportTemplateFS embed.FS

var (
	htmlTemplateFuncs = template.FuncMap{
		"statusWord": enabledWord,
		"gradeClass": gradeBadgeClass,
	}

	markdownTemplateFuncs = template.FuncMap{
		"statusWord": enabledWord,
	}

	htmlReportTemplate = template.Must(
		template.New("report.html").Funcs(htmlTemplateFuncs).ParseFS(reportTemplateFS, htmlTemplatePath),
	)
	markdownReportTemplate = template.Must(
		template.New("report.md").Funcs(markdownTemplateFuncs).ParseFS(reportTemplateFS, markdownTemplatePath),
	)
)

// TemplateData is the view rendered by the report templates.
type TemplateData struct {
	Source      string
	GeneratedAt string
	ScanTime    string
	Basic       scanner.BasicInfo
	Server      scanner.ServerInfo
	Domain      scanner.DomainInfo
	Security    scanner.SecurityInfo
	Performance scanner.PerformanceInfo
	Technology  scanner.TechnologyInfo
	HeaderNames []string
}

var reportCmd = &cobra.Command{
	Use:   "report <scan.json>",
	Short: "Render a saved scan document as text, Markdown, HTML, or PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("output")

		format = strings.ToLower(format)
		switch format {
		case "text", "md", "html", "pdf":
		default:
			return &UnsupportedFormatError{Format: format}
		}

		envelope, err := loadScanDocument(inputPath)
		if err != nil {
			return err
		}
		data := buildTemplateData(inputPath, envelope)

		var content string

		switch format {
		case "text":
			if outPath == "" {
				renderEnvelope(cmd.OutOrStdout(), envelope)
				return nil
			}
			var buf bytes.Buffer
			prev := color.NoColor
			color.NoColor = true
			renderEnvelope(&buf, envelope)
			color.NoColor = prev
			content = buf.String()
		case "md":
			content, err = generateMarkdownReport(data)
		case "html":
			content, err = generateHTMLReport(data)
		case "pdf":
			pdfBytes, perr := generatePDFReportBytes(data)
			if perr != nil {
				return fmt.Errorf("failed to generate PDF report: %w", perr)
			}
			if outPath == "" {
				outPath = deriveOutputPath(inputPath, "pdf")
			}
			if err := os.WriteFile(outPath, pdfBytes, consts.DefaultFilePerm); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Report generated: %s\n", outPath)
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}

		if outPath == "" {
			outPath = deriveOutputPath(inputPath, format)
		}
		if err := os.WriteFile(outPath, []byte(content), consts.DefaultFilePerm); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		fmt.Printf("Report generated: %s\n", outPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("format", "f", "md", "Report format (text|md|html|pdf)")
	reportCmd.Flags().StringP("output", "o", "", "Output file (default derives from the input name)")
}

// loadScanDocument reads and decodes a saved scan envelope. Documents without
// report data (a rejected target) cannot be rendered.
func loadScanDocument(path string) (*scanner.Envelope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan document: %w", err)
	}

	envelope := &scanner.Envelope{}
	if err := json.Unmarshal(raw, envelope); err != nil {
		return nil, &ReportDecodeError{Path: path, Err: err}
	}
	if envelope.Data == nil {
		return nil, &ReportDecodeError{Path: path, Err: errors.New("document carries no report data")}
	}

	return envelope, nil
}

func buildTemplateData(source string, envelope *scanner.Envelope) TemplateData {
	data := envelope.Data

	names := make([]string, 0, len(data.SecurityInfo.SecurityHeaders))
	for name := range data.SecurityInfo.SecurityHeaders {
		names = append(names, name)
	}
	sort.Strings(names)

	return TemplateData{
		Source:      filepath.Base(source),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ScanTime:    envelope.ScanTime,
		Basic:       data.BasicInfo,
		Server:      data.ServerInfo,
		Domain:      data.DomainInfo,
		Security:    data.SecurityInfo,
		Performance: data.PerformanceInfo,
		Technology:  data.TechnologyInfo,
		HeaderNames: names,
	}
}

func deriveOutputPath(inputPath, format string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + "." + format
}

func gradeBadgeClass(grade string) string {
	switch strings.ToUpper(grade) {
	case "A", "B":
		return "grade-good"
	case "C", "D":
		return "grade-mid"
	case "E", "F":
		return "grade-bad"
	}
	return "grade-unknown"
}

func generateMarkdownReport(data TemplateData) (string, error) {
	var sb strings.Builder
	if err := markdownReportTemplate.ExecuteTemplate(&sb, "report.md", data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func generateHTMLReport(data TemplateData) (string, error) {
	var sb strings.Builder
	if err := htmlReportTemplate.ExecuteTemplate(&sb, "report.html", data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func generatePDFReportBytes(data TemplateData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Website Intelligence Report: %s", data.Basic.Domain), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Metadata section
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("URL: %s", data.Basic.URL), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Scanned: %s", data.ScanTime), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", data.GeneratedAt), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Source: %s", data.Source), "", 1, "", false, 0, "")
	pdf.Ln(5)

	writeSection := func(title string, rows [][2]string) {
		// Check if we need a new page before adding content
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 8, title, "", 1, "", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, row := range rows {
			if pdf.GetY() > 270 {
				pdf.AddPage()
			}
			pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", row[0], row[1]), "", 1, "", false, 0, "")
		}
		pdf.Ln(3)
	}

	writeSection("Basic", [][2]string{
		{"Domain", data.Basic.Domain},
		{"Status code", fmt.Sprintf("%v", data.Basic.StatusCode)},
		{"Protocol", data.Basic.Protocol},
		{"Port", fmt.Sprintf("%d", data.Basic.Port)},
	})

	writeSection("Server", [][2]string{
		{"IP address", data.Server.IPAddress},
		{"Server", data.Server.Server},
		{"Location", data.Server.Location},
		{"City", data.Server.City},
		{"ISP", data.Server.ISP},
	})

	writeSection("Domain", [][2]string{
		{"Registrar", data.Domain.Registrar},
		{"Created", data.Domain.CreationDate},
		{"Expires", data.Domain.ExpiryDate},
		{"Name servers", data.Domain.NameServers},
		{"DNSSEC", data.Domain.DNSSEC},
	})

	securityRows := [][2]string{
		{"SSL", enabledWord(data.Security.SSLCertificate.Enabled)},
	}
	if data.Security.SSLCertificate.Enabled {
		securityRows = append(securityRows,
			[2]string{"Issuer", data.Security.SSLCertificate.Issuer},
			[2]string{"Subject", data.Security.SSLCertificate.Subject},
			[2]string{"Valid from", data.Security.SSLCertificate.ValidFrom},
			[2]string{"Valid to", data.Security.SSLCertificate.ValidTo},
		)
	} else {
		securityRows = append(securityRows, [2]string{"Note", data.Security.SSLCertificate.Message})
	}
	securityRows = append(securityRows,
		[2]string{"HSTS", enabledWord(data.Security.HSTSEnabled)},
		[2]string{"CSP", enabledWord(data.Security.ContentSecurityPolicy)},
		[2]string{"Header grade", data.Security.HeaderGrade},
	)
	writeSection("Security", securityRows)

	// Declared security headers get their own block; values can be long
	if len(data.HeaderNames) > 0 {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("Declared Security Headers (%d)", len(data.HeaderNames)), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, name := range data.HeaderNames {
			if pdf.GetY() > 270 {
				pdf.AddPage()
			}
			pdf.MultiCell(0, 5, fmt.Sprintf("%s: %s", name, data.Security.SecurityHeaders[name]), "", "", false)
		}
		pdf.Ln(3)
	}

	writeSection("Performance", [][2]string{
		{"Response time", data.Performance.ResponseTime},
		{"Compression", data.Performance.Compression},
		{"Caching", data.Performance.Caching},
		{"Page size", data.Performance.PageSize},
	})

	technologyRows := [][2]string{
		{"Web server", data.Technology.WebServer},
		{"Language", data.Technology.ProgrammingLanguage},
		{"CMS", data.Technology.CMS},
		{"JS frameworks", data.Technology.JavaScriptFrameworks},
		{"Analytics", data.Technology.Analytics},
		{"Meta generator", data.Technology.MetaGenerator},
		{"Favicon SHA1", data.Technology.FaviconSHA1},
		{"Favicon MMH3", data.Technology.FaviconMMH3},
	}
	if len(data.Technology.DetectedTechnologies) > 0 {
		technologyRows = append(technologyRows, [2]string{"Detected", strings.Join(data.Technology.DetectedTechnologies, ", ")})
	}
	writeSection("Technology", technologyRows)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
