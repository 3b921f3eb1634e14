package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that drops everything, keeping service log
// lines (point mutations, admin logins) out of test output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
