// Package logging provides the diagnostic stream for lognerd.
//
// The diagnostic stream is separate from the log sinks a lognerd Logger writes
// to. It carries advisories about the logging subsystem itself: a file sink
// disabled because the runtime cannot write files, a misconfigured server
// runtime, or a swallowed rotation failure. It is built on [log/slog].
//
// # Basic Usage
//
//	diag := logging.New(logging.Config{
//		Level:  slog.LevelWarn,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	diag.Warn("file sink disabled", "runtime", "client")
//
// Text output is colorized only when the writer is a terminal and neither
// NO_COLOR nor TERM=dumb is set; see [SupportsColor].
//
// # Testing
//
// Tests mirror diagnostics to the test log with [ForTest]. [NewDiscard]
// backs lognerd.WithDiagnostics(nil), which silences them.
package logging
