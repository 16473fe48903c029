// ABOUTME: CLI command for summary statistics over the sleep log.
// ABOUTME: Averages, median bedtime, consistency score, chronotype.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/hweilin/sleeplog/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics",
	Long: `Show aggregate statistics over the whole sleep log: record count,
average duration/score/cycles, median bedtime, a 0-100 bedtime consistency
score, and a chronotype classification from median mid-sleep time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := st.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("No sleep records yet.")
			return nil
		}

		s := stats.Compute(recs)
		bold := color.New(color.Bold)

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("Records"), fmt.Sprintf("%d", s.Records))
		tbl.AddRow(bold.Sprint("Avg duration"), fmt.Sprintf("%.2f h", s.AvgDurationHours))
		tbl.AddRow(bold.Sprint("Avg score"), fmt.Sprintf("%.1f", s.AvgScore))
		tbl.AddRow(bold.Sprint("Avg cycles"), fmt.Sprintf("%.1f", s.AvgCycles))
		tbl.AddRow(bold.Sprint("Median bedtime"), s.MedianBedtime)
		tbl.AddRow(bold.Sprint("Consistency"), fmt.Sprintf("%.1f / 100", s.ConsistencyScore))
		tbl.AddRow(bold.Sprint("Chronotype"), string(s.Chronotype))
		fmt.Println(tbl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
