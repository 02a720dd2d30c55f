package logging

import (
	"fmt"
	"log/slog"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyList      = "list"
	KeyBlock     = "block"
	KeyTask      = "task"
	KeySequence  = "sequence"
	KeyStatus    = "status"
	KeyDuration  = "duration"
	KeyError     = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithBlock returns a logger with the block attribute set.
func WithBlock(logger *slog.Logger, block string) *slog.Logger {
	return logger.With(slog.String(KeyBlock, block))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// List returns a slog attribute for the task list identifier.
func List(listID string) slog.Attr {
	return slog.String(KeyList, listID)
}

// Block returns a slog attribute for a block instance identifier.
func Block(block string) slog.Attr {
	return slog.String(KeyBlock, block)
}

// Task returns a slog attribute for a task identifier.
func Task(taskID string) slog.Attr {
	return slog.String(KeyTask, taskID)
}

// Sequence returns a slog attribute for a render sequence number.
func Sequence(seq uint64) slog.Attr {
	return slog.Uint64(KeySequence, seq)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Duration returns a slog attribute for an operation duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted
// from output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content,
// as even partial token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
