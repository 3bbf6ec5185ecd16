package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/sysreport/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/sysreport.yaml
var configTemplate embed.FS

// templatePath is the embedded template location.
const templatePath = "templates/sysreport.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new sysreport configuration file",
		Long: `Initialize writes a commented sysreport configuration file.

The file documents every option with its default value. After writing, the
file is loaded back and validated, and init reports whether sysreport will
pick it up from that location.

Examples:
  # Create .sysreport in current directory
  sysreport init

  # Create the per-user config file
  sysreport init --xdg

  # Print the template instead of writing it
  sysreport init --stdout`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().Bool("xdg", false,
		"Write to the XDG config directory instead of --output")
	cmd.Flags().Bool("stdout", false,
		"Print the template to stdout and write nothing")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	cmd.MarkFlagsMutuallyExclusive("output", "xdg", "stdout")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	outputPath, err := flags.GetString("output")
	if err != nil {
		return err
	}
	useXDG, err := flags.GetBool("xdg")
	if err != nil {
		return err
	}
	toStdout, err := flags.GetBool("stdout")
	if err != nil {
		return err
	}
	force, err := flags.GetBool("force")
	if err != nil {
		return err
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	out := cmd.OutOrStdout()
	if toStdout {
		_, err := out.Write(content)
		return err
	}

	if useXDG {
		outputPath = config.XDGConfigFile()
	}

	if err := writeConfigFile(outputPath, content, force); err != nil {
		return err
	}

	cfg, err := validateConfigFile(outputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	printInitSummary(out, cfg, outputPath)
	return nil
}

// writeConfigFile writes content to path with owner-only permissions.
// An existing file is kept unless force is set.
func writeConfigFile(path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// validateConfigFile loads path the way the root command does and checks
// the resulting configuration.
func validateConfigFile(path string) (*config.Config, error) {
	file, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("written configuration does not load: %w", err)
	}

	cfg := config.NewConfig()
	cfg.Apply(file)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("written configuration is invalid: %w", err)
	}
	return cfg, nil
}

// printInitSummary shows the effective settings and whether path is on the
// default search list.
func printInitSummary(out io.Writer, cfg *config.Config, path string) {
	fmt.Fprintln(out, "\nEffective settings:")
	fmt.Fprintf(out, "  disk path:  %s\n", cfg.DiskPath)
	fmt.Fprintf(out, "  format:     %s\n", cfg.Format)
	fmt.Fprintf(out, "  history:    %t (%s)\n", cfg.SaveHistory, cfg.DBDir)

	if !config.IsSearchedPath(path) {
		fmt.Fprintf(out, "\nThis location is not searched by default; run sysreport with -c %s\n", path)
	}
}
