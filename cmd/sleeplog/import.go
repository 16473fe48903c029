// ABOUTME: CLI command for importing uploaded tabular sleep data.
// ABOUTME: Parses CSV or JSON payloads and appends the normalized batch.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/hweilin/sleeplog/internal/importer"
	"github.com/hweilin/sleeplog/internal/models"
	"github.com/spf13/cobra"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a cleaned CSV or JSON table",
	Long: `Import a tabular file into the sleep log.

The table needs at least a date_only column. Start and end times may be
full timestamps or HH:MM clocks resolved against date_only. Column names
are matched case- and space-insensitively. Rows that fail to parse keep
their good fields and blank the bad ones; nothing is dropped. Supplied
durations are trusted, missing ones computed. Duplicate dates are kept,
since naps are legitimate.

EXAMPLES:

  sleeplog import cleaned.csv
  sleeplog import backlog.json
  sleeplog import cleaned.csv --dry-run   # Parse and preview only`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		now := localNow()
		var recs []*models.SleepRecord
		if strings.EqualFold(filepath.Ext(path), ".json") {
			recs, err = importer.ImportJSON(f, st.Location(), now)
		} else {
			recs, err = importer.ImportCSV(f, st.Location(), now)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if importDryRun {
			fmt.Printf("Parsed %d rows (dry run, nothing written)\n", len(recs))
			return nil
		}

		if err := st.Append(recs); err != nil {
			return fmt.Errorf("failed to append records: %w", err)
		}
		color.Green("✓ Imported %d rows into %s", len(recs), st.LogPath())
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse without writing")
	rootCmd.AddCommand(importCmd)
}
