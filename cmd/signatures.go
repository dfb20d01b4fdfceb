package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/webint/internal/scanner"
)

var signaturesCmd = &cobra.Command{
	Use:   "signatures",
	Short: "List the technology detection signatures",
	Long: `Print every signature the fingerprint engine evaluates, in evaluation
order. Within the language, cms, and analytics categories the first matching
signature wins; javascript matches accumulate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		asJSON, _ := cmd.Flags().GetBool("json")

		entries := scanner.Catalog()
		if category != "" {
			category = strings.ToLower(category)
			if !validSignatureCategory(category) {
				return fmt.Errorf("unknown category %q (must be %s, %s, %s, or %s)",
					category, scanner.CategoryLanguage, scanner.CategoryCMS, scanner.CategoryJSFramework, scanner.CategoryAnalytics)
			}
			filtered := make([]scanner.CatalogEntry, 0, len(entries))
			for _, entry := range entries {
				if entry.Category == category {
					filtered = append(filtered, entry)
				}
			}
			entries = filtered
		}

		out := cmd.OutOrStdout()

		if asJSON {
			b, err := json.MarshalIndent(entries, jsonPrefix, jsonIndent)
			if err != nil {
				return fmt.Errorf("failed to marshal catalog: %w", err)
			}
			fmt.Fprintln(out, string(b))
			return nil
		}

		tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tLABEL\tPATTERN")
		for _, entry := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Category, entry.Label, entry.Pattern)
		}
		tw.Flush()

		fmt.Fprintf(out, "\n%s %d signature(s)\n", colorInfo("Total:"), len(entries))
		return nil
	},
}

func validSignatureCategory(category string) bool {
	switch category {
	case scanner.CategoryLanguage, scanner.CategoryCMS, scanner.CategoryJSFramework, scanner.CategoryAnalytics:
		return true
	}
	return false
}

func init() {
	signaturesCmd.Flags().String("category", "", "Filter by category (language|cms|javascript|analytics)")
	signaturesCmd.Flags().Bool("json", false, "Emit the catalog as JSON")
}
