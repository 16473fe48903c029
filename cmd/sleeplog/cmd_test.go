// ABOUTME: Tests for CLI helper functions and command wiring.
// ABOUTME: Covers formatting helpers, command registration, and flags.
package main

import (
	"testing"
	"time"

	"github.com/hweilin/sleeplog/internal/models"
)

func TestFmtTime(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{
			name:  "zero time",
			input: time.Time{},
			want:  "-",
		},
		{
			name:  "normal timestamp",
			input: time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC),
			want:  "2025-03-01 23:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fmtTime(tt.input); got != tt.want {
				t.Errorf("fmtTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFmtInt(t *testing.T) {
	if got := fmtInt(nil); got != "-" {
		t.Errorf("fmtInt(nil) = %q, want %q", got, "-")
	}
	if got := fmtInt(models.IntPtr(85)); got != "85" {
		t.Errorf("fmtInt(85) = %q, want %q", got, "85")
	}
}

func TestFmtFloat(t *testing.T) {
	if got := fmtFloat(nil); got != "-" {
		t.Errorf("fmtFloat(nil) = %q, want %q", got, "-")
	}
	if got := fmtFloat(models.FloatPtr(6.75)); got != "6.75" {
		t.Errorf("fmtFloat(6.75) = %q, want %q", got, "6.75")
	}
	if got := fmtFloat(models.FloatPtr(7)); got != "7.00" {
		t.Errorf("fmtFloat(7) = %q, want %q", got, "7.00")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"add", "list", "import", "template", "gapfill",
		"forecast", "stats", "vitals", "device", "export",
		"delete", "sync", "mcp",
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestSyncSubcommands(t *testing.T) {
	want := []string{"link", "status", "push", "pull", "wipe"}

	registered := make(map[string]bool)
	for _, cmd := range syncCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("sync subcommand %q not registered", name)
		}
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"data", "zone"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not defined", name)
		}
	}
}

func TestListLimitFlagDefault(t *testing.T) {
	flag := listCmd.Flags().Lookup("limit")
	if flag == nil {
		t.Fatal("limit flag not defined")
	}
	if flag.DefValue != "20" {
		t.Errorf("limit default = %s, want 20", flag.DefValue)
	}
	if flag.Shorthand != "n" {
		t.Errorf("limit shorthand = %s, want n", flag.Shorthand)
	}
}

func TestForecastFlags(t *testing.T) {
	if listCmd.Flags().Lookup("limit") == nil {
		t.Fatal("limit flag not defined")
	}
	k := forecastCmd.Flags().Lookup("neighbors")
	if k == nil {
		t.Fatal("neighbors flag not defined")
	}
	if k.DefValue != "3" {
		t.Errorf("neighbors default = %s, want 3", k.DefValue)
	}
	if forecastCmd.Flags().Lookup("date") == nil {
		t.Error("date flag not defined")
	}
}

func TestAddCommandArgs(t *testing.T) {
	// add requires exactly sleep and wake clocks.
	if err := addCmd.Args(addCmd, []string{"23:30"}); err == nil {
		t.Error("expected error for one arg")
	}
	if err := addCmd.Args(addCmd, []string{"23:30", "07:15"}); err != nil {
		t.Errorf("unexpected error for two args: %v", err)
	}
}
