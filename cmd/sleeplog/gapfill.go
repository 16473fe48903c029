// ABOUTME: CLI commands for the gap-fill calendar grid.
// ABOUTME: 'template' writes the editable grid; 'gapfill' reconciles edits.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hweilin/sleeplog/internal/gapfill"
	"github.com/spf13/cobra"
)

var templateOutput string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the gap-fill calendar grid as CSV",
	Long: `Write the editable calendar grid: one row per day from the configured
start date to today, newest first, pre-filled with the earliest record on
each date (later naps are left alone). Times are HH:MM strings so the grid
edits cleanly in a spreadsheet. Blank rows are days with no record yet.

Feed the edited file back with 'sleeplog gapfill'.

EXAMPLES:

  sleeplog template > grid.csv
  sleeplog template -o grid.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := st.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		from, err := cfg.GetGapFillStart(st.Location())
		if err != nil {
			return err
		}
		rows := gapfill.Window(recs, from, localNow())

		out := os.Stdout
		if templateOutput != "" {
			f, err := os.Create(templateOutput)
			if err != nil {
				return fmt.Errorf("create %s: %w", templateOutput, err)
			}
			defer f.Close()
			out = f
		}
		if err := gapfill.WriteTemplate(out, rows); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		if templateOutput != "" {
			color.Green("✓ Wrote %d calendar rows to %s", len(rows), templateOutput)
		}
		return nil
	},
}

var gapfillCmd = &cobra.Command{
	Use:   "gapfill <edited.csv>",
	Short: "Merge an edited calendar grid into the log",
	Long: `Merge an edited gap-fill grid back into the sleep log.

Blank rows are untouched calendar slots and are skipped. Each filled row's
times resolve through the overnight rule; the (start, end) pair is the
identity key. A matching record is updated in place (only fields that are
present and differ, with update_time bumped) and an unmatched row inserts
a new record. The log is rewritten, sorted, only when something changed.

Note: editing a row's start or end time creates a new record rather than
correcting the old one, because identity is exact (start, end) equality.

EXAMPLES:

  sleeplog gapfill grid.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		rows, err := gapfill.ReadEdited(f, st.Location())
		if err != nil {
			return fmt.Errorf("read edited grid: %w", err)
		}

		res, err := gapfill.Reconcile(st, rows, localNow())
		if err != nil {
			return fmt.Errorf("reconcile failed: %w", err)
		}
		if !res.Changed() {
			fmt.Println("No changes detected.")
			return nil
		}
		color.Green("✓ Reconciled: %d inserted, %d updated, %d skipped",
			res.Inserted, res.Updated, res.Skipped)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(gapfillCmd)
}
