// ABOUTME: CLI command for exporting the sleep log.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/hweilin/sleeplog/internal/models"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export sleep data",
	Long: `Export the sleep log in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown table (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include records since this date (markdown only)

EXAMPLES:

  sleeplog export json                      # Export everything as JSON
  sleeplog export json -o backup.json       # Save to file
  sleeplog export yaml
  sleeplog export markdown --since 2025-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		installID, err := cfg.EnsureInstallID()
		if err != nil {
			return err
		}

		var data []byte
		switch format {
		case "json":
			data, err = st.ExportJSON(installID)
		case "yaml":
			data, err = st.ExportYAML(installID)
		case "markdown":
			var since time.Time
			if exportSince != "" {
				since, err = time.ParseInLocation(models.DateLayout, exportSince, st.Location())
				if err != nil {
					return fmt.Errorf("invalid --since date: %s", exportSince)
				}
			}
			data, err = st.ExportMarkdown(since)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput == "" {
			fmt.Print(string(data))
			return nil
		}
		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("write %s: %w", exportOutput, err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include records since this date (YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
}
