// Package logging provides slog attribute helpers for consistent
// structured logging across the application, plus sanitizers that keep
// credentials out of log output.
package logging
