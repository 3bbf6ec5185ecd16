// Package config provides configuration structures and utilities for sysreport.
// Values come from built-in defaults, an optional YAML file and command-line
// flags, applied in that order.
package config
