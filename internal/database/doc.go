// Package database provides SQLite-based snapshot history for sysreport.
//
// History is opt-in. When enabled, every collected model.Snapshot is stored
// as JSON next to a few indexed summary columns (host, memory percentage,
// disk capacity) so `sysreport history` can list past runs without decoding
// each report. The driver is modernc.org/sqlite, a CGO-free implementation.
package database
