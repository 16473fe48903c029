// ABOUTME: CLI command for viewing device heart-rate and stress exports.
// ABOUTME: Read-only; the sleep log itself is never touched here.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/hweilin/sleeplog/internal/vitals"
	"github.com/spf13/cobra"
)

var vitalsLimit int

var vitalsCmd = &cobra.Command{
	Use:   "vitals <heart|stress> <file>",
	Short: "View a device heart-rate or stress export",
	Long: `Read a device vitals CSV and print the most recent samples. Vendor
column prefixes (com.samsung.health....) are handled; rows with bad
timestamps or values are dropped. Nothing is written.

EXAMPLES:

  sleeplog vitals heart heart_rate.csv
  sleeplog vitals stress stress.csv -n 50`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"heart", "stress"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, path := args[0], args[1]
		bold := color.New(color.Bold)
		tbl := uitable.New()
		tbl.Separator = "  "

		switch kind {
		case "heart":
			samples, err := vitals.LoadHeart(path, st.Location())
			if err != nil {
				return err
			}
			if len(samples) > vitalsLimit {
				samples = samples[len(samples)-vitalsLimit:]
			}
			tbl.AddRow(bold.Sprint("Time"), bold.Sprint("BPM"))
			for _, sm := range samples {
				tbl.AddRow(sm.Time.Format("2006-01-02 15:04"), fmt.Sprintf("%.0f", sm.BPM))
			}
		case "stress":
			samples, err := vitals.LoadStress(path, st.Location())
			if err != nil {
				return err
			}
			if len(samples) > vitalsLimit {
				samples = samples[len(samples)-vitalsLimit:]
			}
			tbl.AddRow(bold.Sprint("Time"), bold.Sprint("Score"))
			for _, sm := range samples {
				tbl.AddRow(sm.Time.Format("2006-01-02 15:04"), fmt.Sprintf("%.0f", sm.Score))
			}
		default:
			return fmt.Errorf("unknown vitals kind: %s (want heart or stress)", kind)
		}

		fmt.Println(tbl)
		return nil
	},
}

func init() {
	vitalsCmd.Flags().IntVarP(&vitalsLimit, "limit", "n", 20, "max samples to show")
	rootCmd.AddCommand(vitalsCmd)
}
