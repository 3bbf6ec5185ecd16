// Package log builds the slog loggers used by sysreport.
//
// Diagnostics go to standard error so they never mix with the report on
// standard output. The default level is Warn, which still shows command
// failures logged at Error; verbose mode lowers the level to Debug and
// shows each step and parse detail.
//
// RedactHandler wraps any slog.Handler and masks configured strings, such
// as the host node name, in messages and string attributes:
//
//	logger := log.NewLogger(os.Stderr, log.Options{
//	    Verbose: true,
//	    Redact:  []string{hostname},
//	})
//	slog.SetDefault(logger)
package log
