// Package logger provides structured logging for branchdiff.
// It wraps log/slog behind a small interface so packages can accept a
// Logger and tests can pass Nop.
package logger
