package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/khanhnv2901/webint/internal/scanner"
	consts "github.com/khanhnv2901/webint/internal/shared/constants"
)

const (
	jsonPrefix = ""
	jsonIndent = "  "
)

var cfgFile string
var logger *zap.SugaredLogger
var prettyOutput bool
var progressEnabled bool
var outputFile string
var saveDir string

var rootCmd = &cobra.Command{
	Use:   "webint <url>",
	Short: "Probe one website and emit a structured intelligence report",
	Long: `webint inspects a single target URL and reports what is observable from
the outside: serving infrastructure, DNS posture, TLS certificate, security
headers, coarse performance characteristics, and the technology stack.

The report is one JSON document on stdout. Probe failures never abort the
scan; affected fields degrade to "Unknown".`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	s := buildScanner(cliConfig.Scan.Deep)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			fmt.Fprintf(os.Stderr, "\n%s Received %s, finalizing partial report...\n", colorWarn("!"), sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	var progress *progressPrinter
	if progressEnabled {
		progress = newProgressPrinter(rawURL)
		progress.Start()
	}

	envelope := s.Scan(ctx, rawURL)

	if progress != nil {
		progress.Stop()
	}

	payload, err := json.MarshalIndent(envelope, jsonPrefix, jsonIndent)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	out := cmd.OutOrStdout()
	if prettyOutput {
		renderEnvelope(out, envelope)
	} else {
		fmt.Fprintln(out, string(payload))
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, payload, consts.DefaultFilePerm); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s Report written: %s\n", colorInfo("→"), outputFile)
	}

	if saveDir != "" {
		path, err := saveReport(saveDir, envelope, payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s Report written: %s\n", colorInfo("→"), path)
	}

	return nil
}

// buildScanner assembles a Scanner from the merged flag and config-file
// settings. The deep flag is a parameter so the API server can hold both a
// shallow and a deep instance.
func buildScanner(deep bool) *scanner.Scanner {
	return scanner.New(scanner.Config{
		Timeout:     time.Duration(cliConfig.Scan.TimeoutSecs) * time.Second,
		DNSTimeout:  time.Duration(cliConfig.Scan.DNS.Timeout) * time.Second,
		UserAgent:   cliConfig.Scan.UserAgent,
		RateLimit:   cliConfig.Scan.RateLimit,
		Nameservers: cliConfig.Scan.DNS.Nameservers,
		GeoEndpoint: cliConfig.Scan.GeoEndpoint,
		Deep:        deep,
		Logger:      logger,
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// PersistentPreRunE is assigned here rather than in the rootCmd literal:
	// applyConfigDefaults reads rootCmd, which would otherwise be an
	// initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".webint")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()
		applyConfigDefaults()

		// init logger
		l, _ := zap.NewProduction()
		logger = l.Sugar()

		return nil
	}

	// config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.webint.yaml)")

	// scan flags bound straight into the runtime config
	rootCmd.Flags().IntVarP(&cliConfig.Scan.TimeoutSecs, "timeout", "t", cliConfig.Scan.TimeoutSecs, "per-probe timeout in seconds")
	rootCmd.Flags().BoolVar(&cliConfig.Scan.Deep, "deep", cliConfig.Scan.Deep, "Enable deep fingerprinting (favicon hashes, DOM extraction, extended matching)")
	rootCmd.Flags().StringVar(&cliConfig.Scan.UserAgent, "user-agent", cliConfig.Scan.UserAgent, "User-Agent header for outbound requests")
	rootCmd.Flags().IntVarP(&cliConfig.Scan.RateLimit, "rate", "r", cliConfig.Scan.RateLimit, "outbound requests per second")
	rootCmd.Flags().StringSliceVar(&cliConfig.Scan.DNS.Nameservers, "nameservers", cliConfig.Scan.DNS.Nameservers, "Custom DNS nameservers (e.g., 8.8.8.8:53,1.1.1.1:53)")
	rootCmd.Flags().IntVar(&cliConfig.Scan.DNS.Timeout, "dns-timeout", cliConfig.Scan.DNS.Timeout, "DNS query timeout in seconds")
	rootCmd.Flags().StringVar(&cliConfig.Scan.GeoEndpoint, "geoip-endpoint", cliConfig.Scan.GeoEndpoint, "Geolocation endpoint template with one %s for the IP")

	// output flags
	rootCmd.Flags().BoolVar(&prettyOutput, "pretty", false, "Render a colored human-readable report instead of JSON")
	rootCmd.Flags().BoolVar(&progressEnabled, "progress", false, "Display a live progress line on stderr")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Also write the JSON report to this file")
	rootCmd.Flags().StringVarP(&saveDir, "save-dir", "d", "", "Also save the JSON report into this directory (auto-named)")

	// add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(signaturesCmd)
	rootCmd.AddCommand(reportCmd)
}
