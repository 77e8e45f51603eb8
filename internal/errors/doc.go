// Package errors provides error handling conventions for lognerd.
//
// It re-exports the wrapping helpers of github.com/cockroachdb/errors, defines
// sentinel errors for common failure conditions, and an ExitError type used by
// the CLI to map failures onto process exit codes.
//
// Errors never leave the logging path itself: Logger methods swallow them.
// This package serves configuration parsing and the CLI.
//
//	if errors.Is(err, errors.ErrInvalidLevel) {
//	    // handle bad level name
//	}
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
