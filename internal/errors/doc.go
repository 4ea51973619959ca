// Package errors provides error handling utilities for skel.
//
// The package wraps github.com/cockroachdb/errors for error creation and
// annotation, re-exporting New, Newf, Wrap, Wrapf, Is, and As so callers
// import a single errors package. Wrapped errors carry stack traces and
// support the standard errors.Is and errors.As chain inspection.
//
// It also defines the sentinel errors shared across skel packages and the
// ExitError type used by the CLI to map failures to process exit codes:
//
//	if err := run(); err != nil {
//	    return errors.NewUserError(err, "Run: skel init")
//	}
//
// Exit codes follow the conventional split: 0 for success, 1 for user
// errors (bad input, invalid configuration), 2 for system errors (I/O,
// permissions).
package errors
