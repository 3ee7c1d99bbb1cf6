package logger

import (
	"context"
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

func init() {
	// Use JSON in production, text for development
	env := os.Getenv("ENV")

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Logger returns the default logger
func Logger() *slog.Logger {
	return defaultLogger
}

// Context keys
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	walletKey    contextKey = "wallet"
)

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithWallet adds the wallet address to context
func WithWallet(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, walletKey, address)
}

// FromContext returns a logger with context values
func FromContext(ctx context.Context) *slog.Logger {
	l := defaultLogger

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		l = l.With("request_id", requestID)
	}

	if address, ok := ctx.Value(walletKey).(string); ok && address != "" {
		l = l.With("wallet", address)
	}

	return l
}

// Convenience functions

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}
