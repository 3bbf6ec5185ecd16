// Package command runs host utilities and captures their standard output.
//
// Every data source in sysreport is an external program (uname, sysctl,
// vm_stat, df). This package hides os/exec behind the Runner interface so
// collectors can be tested against canned output, and it normalizes the
// captured bytes into valid UTF-8 text.
package command
