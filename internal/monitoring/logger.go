// Package monitoring provides structured logging for analysis runs and
// dataset fetches.
package monitoring

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger provides structured logging with toolkit-specific helpers
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger writing to stderr, keeping stdout free
// for analysis results
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// AnalysisLogger logs a completed analysis run
func (l *Logger) AnalysisLogger(runID, family string, sampleSize int, duration time.Duration) {
	l.Info("Analysis Completed",
		"run_id", runID,
		"family", family,
		"sample_size", sampleSize,
		"duration_ms", duration.Milliseconds(),
	)
}

// FetchLogger logs a dataset load
func (l *Logger) FetchLogger(source string, sampleSize int, duration time.Duration, success bool) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelWarn
	}

	l.Log(context.Background(), level, "Dataset Loaded",
		"source", source,
		"sample_size", sampleSize,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}
