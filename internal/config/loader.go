package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name searched in the current
// and home directories.
const DefaultConfigFile = ".sysreport"

// xdgConfigFile is the file name inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the YAML configuration file.
type File struct {
	// DiskPath is the filesystem passed to df.
	DiskPath string `yaml:"disk_path,omitempty"`

	// Format is "text" or "markdown".
	Format string `yaml:"format,omitempty"`

	// Output is a file receiving a copy of the report.
	Output string `yaml:"output,omitempty"`

	// CommandTimeout bounds each command, e.g. "5s".
	CommandTimeout time.Duration `yaml:"command_timeout,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`

	Log     LogSection     `yaml:"log,omitempty"`
	History HistorySection `yaml:"history,omitempty"`
}

// LogSection configures diagnostics.
type LogSection struct {
	Format         string `yaml:"format,omitempty"`
	RedactHostname bool   `yaml:"redact_hostname,omitempty"`
}

// HistorySection configures snapshot persistence.
type HistorySection struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Dir     string `yaml:"dir,omitempty"`
}

// LoadConfigFile reads and decodes a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. .sysreport in the current directory
// 3. .sysreport in the user's home directory
// 4. config.yaml in the XDG config directory
//
// Returns the path if found, or an empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// XDGConfigFile returns the configuration file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), xdgConfigFile)
}

// searchPaths returns the implicit configuration locations in search order.
func searchPaths() []string {
	paths := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigFile))
	}
	return append(paths, XDGConfigFile())
}

// IsSearchedPath reports whether FindConfigFile("") would look at path.
func IsSearchedPath(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, p := range searchPaths() {
		if filepath.Clean(p) == abs {
			return true
		}
	}
	return false
}
