// Package main provides the entry point for the sysreport CLI.
//
// sysreport prints the kernel version, memory usage and disk usage of the
// host by running uname, sysctl, vm_stat and df and parsing their output.
//
// Usage:
//
//	sysreport
//	sysreport --markdown --output report.md
//	sysreport history
//
// See --help for all available options.
package main

// main is the entry point for sysreport.
func main() {
	Execute()
}
