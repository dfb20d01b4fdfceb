package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	consts "github.com/khanhnv2901/webint/internal/shared/constants"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show configuration and effective scan defaults",
	Long: `Display webint configuration information including:
  - Configuration file path
  - Effective scan defaults after config-file merge
  - Platform information`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile := "~/.webint.yaml"
		configPath := cfgFile
		if configPath == "" {
			homeDir, _ := os.UserHomeDir()
			configPath = homeDir + "/.webint.yaml"
		} else {
			configFile = configPath
		}
		configExists := "✗ (using defaults)"
		if _, err := os.Stat(configPath); err == nil {
			configExists = "✓ (exists)"
		}

		nameservers := strings.Join(cliConfig.Scan.DNS.Nameservers, ", ")
		if nameservers == "" {
			nameservers = strings.Join(consts.DefaultRecursors, ", ") + " (built-in)"
		}

		geoEndpoint := cliConfig.Scan.GeoEndpoint
		if geoEndpoint == "" {
			geoEndpoint = "(not configured)"
		}

		// Get output writer (for testing support)
		out := cmd.OutOrStdout()

		// Print information
		fmt.Fprintln(out, "webint System Information")
		fmt.Fprintln(out, "=========================")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Platform:          %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "Version:           %s\n", Version)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Configuration File:   %s %s\n", configFile, configExists)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Effective Scan Defaults:")
		fmt.Fprintf(out, "  Probe timeout:   %ds\n", cliConfig.Scan.TimeoutSecs)
		fmt.Fprintf(out, "  DNS timeout:     %ds\n", cliConfig.Scan.DNS.Timeout)
		fmt.Fprintf(out, "  Rate limit:      %d req/s\n", cliConfig.Scan.RateLimit)
		fmt.Fprintf(out, "  Deep mode:       %t\n", cliConfig.Scan.Deep)
		fmt.Fprintf(out, "  User agent:      %s\n", cliConfig.Scan.UserAgent)
		fmt.Fprintf(out, "  Nameservers:     %s\n", nameservers)
		fmt.Fprintf(out, "  GeoIP endpoint:  %s\n", geoEndpoint)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To override defaults, create ~/.webint.yaml with keys such as:")
		fmt.Fprintln(out, "  scan:")
		fmt.Fprintln(out, "    timeout: 15")
		fmt.Fprintln(out, "    deep: true")
		fmt.Fprintln(out, "  dns:")
		fmt.Fprintln(out, "    nameservers: [\"8.8.8.8:53\"]")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
