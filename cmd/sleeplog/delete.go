// ABOUTME: CLI command for deleting the whole sleep log file.
// ABOUTME: Records are never deleted individually; this is the only removal.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the sleep log file",
	Long: `Delete the live sleep log file. A fresh log is created on the next save.

Individual records are never removed; the only deletion is the whole file.
This cannot be undone; keep a backup via 'sleeplog export' first.

The cleaned override and the device export are left untouched.

EXAMPLES:

  sleeplog delete --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteForce {
			return fmt.Errorf("refusing to delete without --force (back up with 'sleeplog export' first)")
		}
		if err := st.Delete(); err != nil {
			return err
		}
		color.Yellow("✗ Deleted %s", st.LogPath())
		fmt.Println("A fresh log will be created on the next save.")
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "confirm deletion")
	rootCmd.AddCommand(deleteCmd)
}
