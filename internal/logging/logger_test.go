package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		" WARN ":  slog.LevelWarn,
		"bogus":   slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNewLoggerLevels(t *testing.T) {
	logger := NewLogger(Config{Level: "warn"})
	ctx := context.Background()

	if logger.Enabled(ctx, slog.LevelInfo) {
		t.Fatalf("info should be suppressed at warn level")
	}
	if !logger.Enabled(ctx, slog.LevelError) {
		t.Fatalf("error should be enabled at warn level")
	}
}

func TestHelpersNilLogger(t *testing.T) {
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Error(nil, "ignored", errors.New("boom"))
}

func TestErrorAttachesError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "run failed", errors.New("store unreachable"), FieldSport, "baseball")

	out := buf.String()
	if !strings.Contains(out, "store unreachable") {
		t.Fatalf("expected error in output, got %q", out)
	}
	if !strings.Contains(out, "sport=baseball") {
		t.Fatalf("expected sport field in output, got %q", out)
	}
}

func TestErrorWithoutError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "run failed", nil)

	if strings.Contains(buf.String(), "error=") {
		t.Fatalf("expected no error attribute, got %q", buf.String())
	}
}
