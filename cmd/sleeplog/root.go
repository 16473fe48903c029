// ABOUTME: Root Cobra command for the sleeplog CLI.
// ABOUTME: Opens config and the record store once for every subcommand.
package main

import (
	"fmt"
	"time"

	"github.com/hweilin/sleeplog/internal/config"
	"github.com/hweilin/sleeplog/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	st       *store.Store
	flagData string
	flagZone string
)

var rootCmd = &cobra.Command{
	Use:   "sleeplog",
	Short: "Personal sleep tracker and forecaster",
	Long: `Sleeplog is a CLI tool for tracking and forecasting personal sleep.

It keeps one canonical, chronologically sorted CSV of sleep records and
normalizes everything that flows into it: device exports with UTC clocks
and minute durations, uploaded spreadsheets, manual entries, and gap-fill
edits of the calendar grid.

QUICK START:

  $ sleeplog add 23:30 07:15                # Log last night
  $ sleeplog add 23:30 07:15 --score 82     # ... with a sleep score
  $ sleeplog list                           # Recent records
  $ sleeplog forecast                       # Project the next sleep window

BULK DATA:

  $ sleeplog import cleaned.csv             # Upload a cleaned spreadsheet
  $ sleeplog template > grid.csv            # Download the gap-fill grid
  $ sleeplog gapfill grid.csv               # Merge the edited grid back

SYNC (OPTIONAL):

  Sync the sleep log across devices using Charm Cloud; data is E2E
  encrypted with your SSH key.

  $ sleeplog sync push
  $ sleeplog sync pull

MCP INTEGRATION:

  Run 'sleeplog mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Records live in a flat CSV at ~/.local/share/sleeplog/sleep_log.csv,
  rewritten in full and re-sorted on every mutation. Single writer only:
  a crash mid-write can corrupt the file, so keep backups via 'export'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagData != "" {
			cfg.DataDir = flagData
		}
		if flagZone != "" {
			cfg.Zone = flagZone
		}

		st, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// localNow is the current wall-clock time in the configured zone, truncated
// to whole seconds the way records store it.
func localNow() time.Time {
	return time.Now().In(st.Location()).Truncate(time.Second)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "data directory (default ~/.local/share/sleeplog)")
	rootCmd.PersistentFlags().StringVar(&flagZone, "zone", "", "local IANA zone (default "+config.DefaultZone+")")
}
