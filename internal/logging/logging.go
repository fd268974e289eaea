// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package logging contains the logging functionality for the transcript service.
package logging

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"slices"

	slogotel "github.com/remychantenay/slog-otel"
)

type ctxKey string

// Public constants
const (
	ErrKey = "error"
)

// Private constants
const (
	slogFields      ctxKey = "slog_fields"
	logLevelDefault        = slog.LevelDebug

	// Log levels
	debug = "debug"
	warn  = "warn"
	err   = "error"
	info  = "info"

	// Log field for critical errors.
	priorityCritical = "critical"
)

// Config controls the structured logger.
type Config struct {
	Level     slog.Level
	AddSource bool
}

type contextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler
func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the context handler on top of the derived handler.
func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the context handler on top of the derived handler.
func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context.
//
// The attribute slice is copied, so sibling contexts derived from the same
// parent (for example one per delivery goroutine) never share a backing array.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		v = append(slices.Clip(v), attr)
		return context.WithValue(parent, slogFields, v)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// ConfigFromEnv reads LOG_LEVEL and LOG_ADD_SOURCE.
func ConfigFromEnv() Config {
	cfg := Config{Level: logLevelDefault}

	switch os.Getenv("LOG_LEVEL") {
	case debug:
		cfg.Level = slog.LevelDebug
	case warn:
		cfg.Level = slog.LevelWarn
	case err:
		cfg.Level = slog.LevelError
	case info:
		cfg.Level = slog.LevelInfo
	}

	addSource := os.Getenv("LOG_ADD_SOURCE")
	cfg.AddSource = addSource == "true" || addSource == "t" || addSource == "1"

	return cfg
}

// NewHandler builds the service handler chain writing JSON to w: context
// attributes, then trace correlation, then the JSON encoder.
func NewHandler(w io.Writer, cfg Config) slog.Handler {
	logOptions := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	return contextHandler{slogotel.OtelHandler{Next: slog.NewJSONHandler(w, logOptions)}}
}

// InitStructureLogConfig sets the structured log behavior
func InitStructureLogConfig() slog.Handler {
	cfg := ConfigFromEnv()

	h := NewHandler(os.Stdout, cfg)
	log.SetFlags(log.Llongfile)
	slog.SetDefault(slog.New(h))

	slog.Info("log config",
		"logLevel", cfg.Level,
		"addSource", cfg.AddSource,
	)

	return h
}

// Priority creates a slog.Attr for error priority classification
func Priority(level string) slog.Attr {
	return slog.String("priority", level)
}

// PriorityCritical creates a slog.Attr for critical errors
// this is used to identify critical errors in the logs
// the ones that should be escalated to the team
func PriorityCritical() slog.Attr {
	return Priority(priorityCritical)
}
