package contextutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerFromContext_Fallback(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	if logger == nil {
		t.Fatal("LoggerFromContext() = nil, want default logger")
	}
	if logger != slog.Default() {
		t.Error("LoggerFromContext() without attachment should return the default logger")
	}
}

func TestWithLogger_RoundTrip(t *testing.T) {
	attached := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), attached)

	if got := LoggerFromContext(ctx); got != attached {
		t.Error("LoggerFromContext() did not return the attached logger")
	}
}
