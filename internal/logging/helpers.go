package logging

import "log/slog"

// The helpers below tolerate a nil logger so library code never has to
// guard log calls.

func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error appends the error as a structured attribute when one is present.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, FieldErr, err)
	}
	logger.Error(msg, args...)
}
