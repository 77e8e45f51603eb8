// Package lognerd is an environment-aware logger with a console sink and a
// rotating file sink.
//
// A Logger's configuration is resolved once, in this order: built-in
// defaults, the detected runtime, LOGNERD_* environment variables, then the
// caller's Overrides. The result is then adjusted so the file sink is never
// enabled where files cannot be written, and so production deployments log
// to file only unless console output was asked for explicitly.
//
//	log := lognerd.New(&lognerd.Overrides{Level: lognerd.Ptr(lognerd.LevelDebug)})
//	log.Info("server started", map[string]any{"port": 8080})
//
// Logging never returns errors to the caller. Problems with the sinks are
// reported on a separate diagnostic slog.Logger, see WithDiagnostics.
package lognerd
