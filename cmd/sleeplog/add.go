// ABOUTME: CLI command for adding a sleep record manually.
// ABOUTME: Resolves overnight spans and appends a fully-formed record.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
	"github.com/spf13/cobra"
)

var (
	addDate  string
	addPhys  int
	addMent  int
	addCycle int
	addScore int
)

var addCmd = &cobra.Command{
	Use:     "add <sleep HH:MM> <wake HH:MM>",
	Aliases: []string{"a"},
	Short:   "Add a sleep record",
	Long: `Add a sleep record for today (or --date).

A wake time on or before the sleep time means the night crossed midnight:
the wake timestamp lands on the next calendar day. Duration is computed in
hours, 2-decimal.

Examples:
  sleeplog add 23:30 07:15
  sleeplog add 23:30 07:15 --score 82 --cycles 4
  sleeplog add 01:10 08:40 --date 2025-06-01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := localNow()
		loc := st.Location()

		date := normalize.Midnight(now)
		if addDate != "" {
			d, err := normalize.ParseDate(addDate, loc)
			if err != nil {
				return fmt.Errorf("invalid date: %s", addDate)
			}
			date = d
		}

		sleepClock, err := normalize.ParseClock(args[0])
		if err != nil {
			return fmt.Errorf("invalid sleep time: %s", args[0])
		}
		wakeClock, err := normalize.ParseClock(args[1])
		if err != nil {
			return fmt.Errorf("invalid wake time: %s", args[1])
		}

		span := normalize.ResolveOvernight(date, &sleepClock, &wakeClock, nil)
		rec := models.NewRecord(*span.Start, *span.End, now)
		rec.SleepDuration = span.Duration
		if cmd.Flags().Changed("phys") {
			rec.PhysicalRecovery = models.IntPtr(addPhys)
		}
		if cmd.Flags().Changed("ment") {
			rec.MentalRecovery = models.IntPtr(addMent)
		}
		if cmd.Flags().Changed("cycles") {
			rec.SleepCycle = models.IntPtr(addCycle)
		}
		if cmd.Flags().Changed("score") {
			rec.SleepScore = models.IntPtr(addScore)
		}

		if err := st.Append([]*models.SleepRecord{rec}); err != nil {
			return fmt.Errorf("failed to append record: %w", err)
		}

		color.Green("✓ Saved, slept %.2f h", *rec.SleepDuration)
		fmt.Printf("  %s → %s\n",
			rec.StartTime.Format("2006-01-02 15:04"),
			rec.EndTime.Format("2006-01-02 15:04"))

		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "calendar date (YYYY-MM-DD), default today")
	addCmd.Flags().IntVar(&addPhys, "phys", 0, "physical recovery % (0-100)")
	addCmd.Flags().IntVar(&addMent, "ment", 0, "mental recovery % (0-100)")
	addCmd.Flags().IntVar(&addCycle, "cycles", 0, "sleep cycle count")
	addCmd.Flags().IntVar(&addScore, "score", 0, "sleep score (0-100)")
	rootCmd.AddCommand(addCmd)
}
