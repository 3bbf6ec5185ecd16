package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/sysreport/internal/command"
	"github.com/nao1215/sysreport/internal/config"
	"github.com/nao1215/sysreport/internal/database"
	"github.com/nao1215/sysreport/internal/log"
	"github.com/nao1215/sysreport/internal/model"
	"github.com/nao1215/sysreport/internal/pipeline"
	"github.com/nao1215/sysreport/internal/report"
	"github.com/spf13/cobra"
)

// runRootCmd collects the snapshot and prints the report.
func runRootCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = ""
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg, hostname)
	slog.SetDefault(logger)

	// Set up context with signal handling so a hung command can be interrupted
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	runner := command.NewExecRunner(command.WithTimeout(cfg.CommandTimeout))
	return runReport(ctx, cfg, runner, hostname, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the config file and flags,
// in increasing order of precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("disk-path") {
		if cfg.DiskPath, err = flags.GetString("disk-path"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.CommandTimeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}

	markdown, err := flags.GetBool("markdown")
	if err != nil {
		return nil, err
	}
	if markdown {
		cfg.Format = config.FormatMarkdown
	}

	save, err := flags.GetBool("save")
	if err != nil {
		return nil, err
	}
	if save {
		cfg.SaveHistory = true
	}

	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}

	return cfg, nil
}

// applyConfigFile overlays the configuration file onto cfg.
// If user explicitly specified a config file path, error if not found.
// If no path specified, silently keep the defaults if no file found.
func applyConfigFile(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath == "" {
		if explicitConfigPath {
			return fmt.Errorf("%s: %w", cfg.ConfigFilePath, config.ErrConfigNotFound)
		}
		return nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	cfg.Apply(file)
	return nil
}

// setupLogger creates the diagnostic logger. The host name is masked when
// redact_hostname is set.
func setupLogger(w io.Writer, cfg *config.Config, hostname string) *slog.Logger {
	opts := log.Options{
		Verbose: cfg.Verbose,
		Format:  log.Format(cfg.LogFormat),
	}
	if cfg.RedactHostname && hostname != "" {
		opts.Redact = []string{hostname}
	}
	return log.NewLogger(w, opts)
}

// runReport executes the collection pipeline and writes the report.
// Failed collection steps do not make it return an error.
func runReport(ctx context.Context, cfg *config.Config, runner command.Runner, hostname string, stdout io.Writer, logger *slog.Logger) error {
	snapshot := model.NewSnapshot(hostname)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(pipeline.DefaultSteps(runner, cfg.DiskPath, logger)...)

	if err := p.Execute(ctx, snapshot); err != nil {
		return fmt.Errorf("collection aborted: %w", err)
	}

	if snapshot.HasErrors() {
		logger.Debug("collection finished with errors", "failed_steps", len(snapshot.Errors))
	}

	if err := outputReport(cfg, snapshot, stdout); err != nil {
		return err
	}

	if cfg.SaveHistory {
		if err := saveSnapshot(ctx, cfg.DBDir, snapshot, logger); err != nil {
			// The report is already printed; history is best effort.
			logger.Error("failed to save snapshot", "error", err)
		}
	}
	return nil
}

// outputReport writes the report to stdout and, if configured, to a file.
func outputReport(cfg *config.Config, snapshot *model.Snapshot, stdout io.Writer) error {
	writers := []report.Writer{report.New(cfg.Format, stdout)}

	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writers = append(writers, report.New(cfg.Format, f))
	}

	if _, err := report.NewMultiWriter(writers...).Write(snapshot); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// saveSnapshot stores the snapshot in the history database under dbDir.
func saveSnapshot(ctx context.Context, dbDir string, snapshot *model.Snapshot, logger *slog.Logger) error {
	if dbDir == "" {
		return errors.New("history directory is not set")
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.SaveSnapshot(ctx, snapshot); err != nil {
		return err
	}

	logger.Info("snapshot saved to database", "id", snapshot.ID, "path", db.Path())
	return nil
}
