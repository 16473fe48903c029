// ABOUTME: CLI command for viewing the raw device sleep export.
// ABOUTME: Converts UTC clocks and minute durations for display only.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/hweilin/sleeplog/internal/store"
	"github.com/spf13/cobra"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "View the device-export fallback file",
	Long: `Read the device sleep export (UTC timestamps, minute durations) from
the data directory and show it converted to local time and hours, with the
weekday derived from each start. The file is consumed read-only; it only
feeds the store when neither the cleaned override nor the live log exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := store.ReadDevice(st.DevicePath(), st.Location())
		if err != nil {
			return fmt.Errorf("failed to read device export: %w", err)
		}
		if len(recs) == 0 {
			fmt.Printf("No device export at %s\n", st.DevicePath())
			return nil
		}

		store.SortByStart(recs)
		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Weekday"), bold.Sprint("Start"),
			bold.Sprint("End"), bold.Sprint("Hours"), bold.Sprint("Score"))
		for _, rec := range recs {
			if rec.StartTime.IsZero() {
				continue
			}
			tbl.AddRow(
				rec.StartTime.Format("2006-01-02"),
				rec.StartTime.Weekday().String(),
				rec.StartTime.Format("15:04"), fmtTime(rec.EndTime),
				fmtFloat(rec.SleepDuration), fmtInt(rec.SleepScore))
		}
		fmt.Println(tbl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deviceCmd)
}
