package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sysreport"

	// DefaultDiskPath is the filesystem passed to df.
	DefaultDiskPath = "/"

	// DefaultCommandTimeout of zero waits for each command without a bound,
	// so a hung utility hangs the report.
	DefaultCommandTimeout = time.Duration(0)

	// DefaultHistoryLimit is the number of rows shown by `sysreport history`.
	DefaultHistoryLimit = 20
)

// Report formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all options for one sysreport run.
// It is built by NewConfig, then overlaid with the config file and flags.
type Config struct {
	// DiskPath is the filesystem reported in the Disk Usage section.
	DiskPath string

	// Format is FormatText or FormatMarkdown.
	Format string

	// ReportFile, when set, receives a copy of the report.
	// Parent directories are created as needed.
	ReportFile string

	// CommandTimeout bounds each external command. Zero disables the bound.
	CommandTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is LogFormatText or LogFormatJSON.
	LogFormat string

	// RedactHostname masks the host node name in log output.
	RedactHostname bool

	// SaveHistory stores each snapshot in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/sysreport on Linux).
	DBDir string

	// ConfigFilePath is the explicit configuration file, if any.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		DiskPath:       DefaultDiskPath,
		Format:         FormatText,
		CommandTimeout: DefaultCommandTimeout,
		LogFormat:      LogFormatText,
		DBDir:          XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for sysreport.
// On Linux: ~/.local/share/sysreport
// On macOS: ~/Library/Application Support/sysreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sysreport.
// On Linux: ~/.config/sysreport
// On macOS: ~/Library/Application Support/sysreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.DiskPath == "" {
		return ErrEmptyDiskPath
	}
	if c.Format != FormatText && c.Format != FormatMarkdown {
		return ErrInvalidFormat
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}
	if c.CommandTimeout < 0 {
		return ErrInvalidTimeout
	}
	if c.SaveHistory && c.DBDir == "" {
		return ErrNoDBDir
	}
	return nil
}

// Apply overlays the non-zero values of a config file onto c.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.DiskPath != "" {
		c.DiskPath = f.DiskPath
	}
	if f.Format != "" {
		c.Format = f.Format
	}
	if f.Output != "" {
		c.ReportFile = f.Output
	}
	if f.CommandTimeout != 0 {
		c.CommandTimeout = f.CommandTimeout
	}
	if f.Verbose {
		c.Verbose = true
	}
	if f.Log.Format != "" {
		c.LogFormat = f.Log.Format
	}
	if f.Log.RedactHostname {
		c.RedactHostname = true
	}
	if f.History.Enabled {
		c.SaveHistory = true
	}
	if f.History.Dir != "" {
		c.DBDir = f.History.Dir
	}
}
