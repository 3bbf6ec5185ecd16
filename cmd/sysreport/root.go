package main

import (
	"fmt"
	"os"

	"github.com/nao1215/sysreport/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sysreport.
// Running it without a subcommand collects and prints the report.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sysreport",
		Short: "Print kernel, memory and disk usage of this host",
		Long: `sysreport prints a short report of the host kernel version, memory usage
and disk usage. The values come from uname, sysctl, vm_stat and df.

A command that fails only removes its lines from the report. The failure is
logged to stderr and the remaining sections are still printed.

Examples:
  # Print the report
  sysreport

  # Report another filesystem
  sysreport -d /System/Volumes/Data

  # Write a Markdown copy of the report
  sysreport -m -o reports/host.md

  # Store the snapshot in the history database
  sysreport --save`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		RunE:          runRootCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Collection flags
	cmd.Flags().StringP("disk-path", "d", config.DefaultDiskPath,
		"Filesystem reported in the Disk Usage section")
	cmd.Flags().DurationP("timeout", "t", config.DefaultCommandTimeout,
		"Timeout for each external command (0 waits forever)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sysreport in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the report as Markdown")
	cmd.Flags().StringP("output", "o", "",
		"Also write the report to the specified file (creates directories if needed)")
	cmd.Flags().BoolP("save", "s", false,
		"Save the snapshot to the history database")

	// Add subcommands
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
