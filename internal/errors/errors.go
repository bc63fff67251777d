// Package errors renders the CLI's error surface: consistent "Error: "
// prefixing, friendly hints for the known domain failures, and the fatal
// exit path shared by all commands.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/fastward/fastward/internal/fasting"
	"github.com/fastward/fastward/internal/logger"
	"github.com/fastward/fastward/internal/storage"
)

// hints maps domain sentinels to a one-line suggestion appended after the
// error text. Only failures a user can act on get a hint.
var hints = []struct {
	target error
	hint   string
}{
	{fasting.ErrSessionConflict, "run 'fastward status' to see it, or 'fastward cancel' first"},
	{fasting.ErrSessionNotActive, "the session has already ended; start a new one with 'fastward start'"},
	{fasting.ErrSessionNotFound, "run 'fastward history' to list your sessions"},
	{storage.ErrNotFound, "run 'fastward init' if the database has not been set up yet"},
}

// Format renders an error with the "Error: " prefix and, for known domain
// failures, an actionable hint.
func Format(err error) string {
	if err == nil {
		return ""
	}
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return fmt.Sprintf("Error: %v (%s)", err, h.hint)
		}
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs the error, prints it to stderr, and exits with code 1. A nil
// error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for ad-hoc messages.
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
