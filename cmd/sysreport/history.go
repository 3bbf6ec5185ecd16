package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/nao1215/sysreport/internal/config"
	"github.com/nao1215/sysreport/internal/database"
	"github.com/nao1215/sysreport/internal/model"
	"github.com/nao1215/sysreport/internal/report"
	"github.com/spf13/cobra"
)

// historyDateFormat is the timestamp layout of the history listing.
const historyDateFormat = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
// This command reads snapshots stored with `sysreport --save`.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show snapshots saved in the history database",
		Long: `History lists the snapshots stored by 'sysreport --save', newest first.

Use --show to print a stored snapshot as a full report, or --latest to print
the most recent snapshot of this host.

Examples:
  # List the last 20 snapshots
  sysreport history

  # List every snapshot
  sysreport history -n 0

  # Re-render snapshot 5 as Markdown
  sysreport history --show 5 -m`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of snapshots to list (0 lists all)")
	cmd.Flags().Int64P("show", "i", 0,
		"Print the snapshot with this ID as a report")
	cmd.Flags().BoolP("latest", "l", false,
		"Print the latest snapshot of this host as a report")
	cmd.Flags().BoolP("markdown", "m", false,
		"Render --show and --latest as Markdown")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sysreport in current or home directory)")

	cmd.MarkFlagsMutuallyExclusive("show", "latest")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("invalid limit %d: must be 0 or greater", limit)
	}
	showID, err := flags.GetInt64("show")
	if err != nil {
		return err
	}
	latest, err := flags.GetBool("latest")
	if err != nil {
		return err
	}
	markdown, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return err
	}
	if err := applyConfigFile(cfg); err != nil {
		return err
	}
	if markdown {
		cfg.Format = config.FormatMarkdown
	}

	out := cmd.OutOrStdout()

	// Open without creating so reading history never leaves a file behind
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if errors.Is(err, database.ErrNotFound) {
		fmt.Fprintln(out, "No snapshots saved yet. Run 'sysreport --save' to record one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	var snapshot *model.Snapshot
	switch {
	case showID != 0:
		snapshot, err = db.GetSnapshotByID(ctx, showID)
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("snapshot %d: %w", showID, err)
		}
	case latest:
		hostname, herr := os.Hostname()
		if herr != nil {
			return fmt.Errorf("failed to get host name: %w", herr)
		}
		snapshot, err = db.LatestSnapshot(ctx, hostname)
		if errors.Is(err, database.ErrNotFound) {
			fmt.Fprintf(out, "No snapshots saved for %s\n", hostname)
			return nil
		}
	default:
		summaries, err := db.ListSnapshots(ctx, limit)
		if err != nil {
			return err
		}
		printHistory(out, summaries)
		return nil
	}
	if err != nil {
		return err
	}

	_, err = report.New(cfg.Format, out).Write(snapshot)
	return err
}

// printHistory prints the snapshot listing.
func printHistory(out io.Writer, summaries []database.Summary) {
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No snapshots saved yet. Run 'sysreport --save' to record one.")
		return
	}

	fmt.Fprintf(out, "Snapshot history (%d):\n\n", len(summaries))
	fmt.Fprintf(out, "  %-6s  %-19s  %-16s  %-20s  %-16s  %-6s  %-8s  %s\n",
		"ID", "Date", "Age", "Host", "Kernel", "Memory", "Disk", "Errors")
	for _, s := range summaries {
		fmt.Fprintf(out, "  %-6d  %-19s  %-16s  %-20s  %-16s  %-6s  %-8s  %d\n",
			s.ID,
			s.CollectedAt.Local().Format(historyDateFormat),
			humanize.Time(s.CollectedAt),
			s.Hostname,
			orDash(s.KernelRelease),
			fmt.Sprintf("%d%%", s.MemoryPercent),
			orDash(s.DiskCapacity),
			s.ErrorCount,
		)
	}
}

// orDash returns "-" for empty values.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
