// ABOUTME: CLI command for listing sleep records.
// ABOUTME: Renders the newest records in a table, optionally limited.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/hweilin/sleeplog/internal/store"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List sleep records",
	Long: `List recent sleep records, newest first.

Each line shows: START  END  DURATION  SCORE  PHYS  MENT  CYCLES

EXAMPLES:

  sleeplog list          # Show last 20 records
  sleeplog list -n 50    # Show last 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := st.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No sleep records yet. Use 'sleeplog add' or 'sleeplog import'.")
			return nil
		}

		store.SortByStart(recs)
		// newest first
		for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
			recs[i], recs[j] = recs[j], recs[i]
		}
		if listLimit > 0 && len(recs) > listLimit {
			recs = recs[:listLimit]
		}

		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("Start"), bold.Sprint("End"), bold.Sprint("Hours"),
			bold.Sprint("Score"), bold.Sprint("Phys"), bold.Sprint("Ment"), bold.Sprint("Cycles"))
		for _, rec := range recs {
			tbl.AddRow(
				fmtTime(rec.StartTime), fmtTime(rec.EndTime),
				fmtFloat(rec.SleepDuration), fmtInt(rec.SleepScore),
				fmtInt(rec.PhysicalRecovery), fmtInt(rec.MentalRecovery),
				fmtInt(rec.SleepCycle))
		}
		fmt.Println(tbl)
		return nil
	},
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func fmtInt(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *p)
}

func fmtFloat(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max records to show")
	rootCmd.AddCommand(listCmd)
}
