// ABOUTME: CLI commands for Charm-based sync of the sleep log.
// ABOUTME: Supports link, status, push, pull, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/hweilin/sleeplog/internal/charm"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync the sleep log across devices",
	Long: `Sync the sleep log across devices using Charm Cloud.

Records are keyed by their (start, end) identity pair, so pushing the same
night twice overwrites in place instead of duplicating it. When both sides
changed a record, the later update_time wins on pull.

Your data is E2E encrypted with your SSH key; the server never sees your
unencrypted sleep log.

COMMANDS:

  link        Link this device to your Charm account
  status      Show sync status and account info
  push        Upload the local log to the cloud
  pull        Merge cloud records into the local log
  wipe        Delete cloud records (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account.

If you don't have a Charm account, one will be created using your SSH key.

Example:
  sleeplog sync link`,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")
		fmt.Println("Your sleep log can now sync across devices.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			return fmt.Errorf("failed to initialize charm client: %w", err)
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			return fmt.Errorf("not linked yet, run 'sleeplog sync link': %w", err)
		}

		remote, err := client.ListRecords()
		if err != nil {
			return err
		}
		local, err := st.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		fmt.Printf("Charm ID: %s\n", id)
		fmt.Printf("Local records:  %d\n", len(local))
		fmt.Printf("Cloud records:  %d\n", len(remote))
		if client.IsReadOnly() {
			color.Yellow("Database is read-only (locked by another process)")
		}
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the local log to the cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			return fmt.Errorf("failed to initialize charm client: %w", err)
		}
		defer client.Close()

		recs, err := st.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}
		if err := client.PutRecords(recs); err != nil {
			return fmt.Errorf("push failed: %w", err)
		}
		color.Green("✓ Pushed %d records", len(recs))
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Merge cloud records into the local log",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			return fmt.Errorf("failed to initialize charm client: %w", err)
		}
		defer client.Close()

		remote, err := client.ListRecords()
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}
		local, err := st.Load()
		if err != nil {
			return fmt.Errorf("failed to load records: %w", err)
		}

		merged := charm.Merge(local, remote)
		if err := st.Write(merged); err != nil {
			return fmt.Errorf("write merged log: %w", err)
		}
		color.Green("✓ Merged %d cloud records, log now has %d", len(remote), len(merged))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete cloud records (destructive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.GetClient()
		if err != nil {
			return fmt.Errorf("failed to initialize charm client: %w", err)
		}
		defer client.Close()

		n, err := client.WipeRecords()
		if err != nil {
			return err
		}
		color.Yellow("✗ Wiped %d cloud records", n)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
