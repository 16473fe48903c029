// ABOUTME: CLI command for sleep forecasting.
// ABOUTME: Single-step and to-a-date projections from the record history.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/hweilin/sleeplog/internal/forecast"
	"github.com/hweilin/sleeplog/internal/models"
	"github.com/hweilin/sleeplog/internal/normalize"
	"github.com/spf13/cobra"
)

var (
	forecastDate string
	forecastK    int
)

var forecastCmd = &cobra.Command{
	Use:     "forecast",
	Aliases: []string{"predict"},
	Short:   "Forecast the next sleep window",
	Long: `Project the next sleep onset with a k-nearest-neighbor regression over
historical bedtimes (minutes since midnight, adjacent-pair training). Wake
time is onset plus the median historical duration.

With --date, the single-step forecast rolls forward autoregressively until
the target date is reached; each step feeds the next, so uncertainty
compounds. Point estimate only.

Too little history is a normal outcome, not an error: you need at least
k+1 records with start times (k defaults to 3).

EXAMPLES:

  sleeplog forecast
  sleeplog forecast --date 2025-07-01
  sleeplog forecast -k 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		recs, err := st.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		f := forecast.New(forecastK)
		var res forecast.Result
		if forecastDate != "" {
			target, err := normalize.ParseDate(forecastDate, st.Location())
			if err != nil {
				return fmt.Errorf("invalid date: %s", forecastDate)
			}
			res, err = f.ForDate(recs, target)
			if err != nil {
				return reportForecastErr(err)
			}
		} else {
			res, err = f.NextSleep(recs)
			if err != nil {
				return reportForecastErr(err)
			}
		}

		color.Cyan("Forecast for %s", res.Date.Format(models.DateLayout))
		fmt.Printf("  sleep %s  wake %s  (%.2f h)\n", res.Sleep, res.Wake, res.DurationHours)
		return nil
	},
}

// reportForecastErr keeps insufficient history from reading like a crash.
func reportForecastErr(err error) error {
	if errors.Is(err, forecast.ErrInsufficientData) {
		fmt.Println("Need more non-empty records before forecasting.")
		return nil
	}
	return err
}

func init() {
	forecastCmd.Flags().StringVar(&forecastDate, "date", "", "target date (YYYY-MM-DD)")
	forecastCmd.Flags().IntVarP(&forecastK, "neighbors", "k", forecast.DefaultNeighbors, "neighbor count")
	rootCmd.AddCommand(forecastCmd)
}
