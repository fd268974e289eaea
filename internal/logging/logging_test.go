// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
)

func TestErrKeyConstant(t *testing.T) {
	if ErrKey != "error" {
		t.Errorf("expected ErrKey to be 'error', got %q", ErrKey)
	}
}

func TestAppendCtx_WithParent(t *testing.T) {
	parentCtx := AppendCtx(context.Background(), slog.String("parent_key", "parent_value"))
	childCtx := AppendCtx(parentCtx, slog.String("child_key", "child_value"))

	attrs, ok := childCtx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "parent_key" || attrs[1].Key != "child_key" {
		t.Errorf("unexpected keys %q, %q", attrs[0].Key, attrs[1].Key)
	}
}

func TestAppendCtx_SiblingsDoNotShareAttributes(t *testing.T) {
	parent := context.Background()
	parent = AppendCtx(parent, slog.String("job_id", "job1"))
	parent = AppendCtx(parent, slog.String("session_id", "s1"))

	first := AppendCtx(parent, slog.String("recipient", "alice@example.com"))
	second := AppendCtx(parent, slog.String("recipient", "bob@example.com"))

	firstAttrs := first.Value(slogFields).([]slog.Attr)
	secondAttrs := second.Value(slogFields).([]slog.Attr)

	if got := firstAttrs[2].Value.String(); got != "alice@example.com" {
		t.Errorf("first sibling recipient overwritten, got %q", got)
	}
	if got := secondAttrs[2].Value.String(); got != "bob@example.com" {
		t.Errorf("second sibling recipient wrong, got %q", got)
	}
}

func TestNewHandler_WritesContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, Config{Level: slog.LevelInfo}))

	ctx := AppendCtx(context.Background(), slog.String("job_id", "job1"))
	logger.With("component", "test").InfoContext(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" {
		t.Errorf("expected msg 'hello', got %v", entry["msg"])
	}
	if entry["job_id"] != "job1" {
		t.Errorf("expected job_id from context, got %v", entry["job_id"])
	}
	if entry["component"] != "test" {
		t.Errorf("expected component attribute, got %v", entry["component"])
	}
}

func TestNewHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, Config{Level: slog.LevelWarn}))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info record to be dropped at warn level, got %q", buf.String())
	}
}

func TestConfigFromEnv(t *testing.T) {
	testCases := []struct {
		name      string
		logLevel  string
		addSource string
		expected  Config
	}{
		{"debug level", "debug", "", Config{Level: slog.LevelDebug}},
		{"warn level", "warn", "false", Config{Level: slog.LevelWarn}},
		{"error level", "error", "1", Config{Level: slog.LevelError, AddSource: true}},
		{"info level", "info", "t", Config{Level: slog.LevelInfo, AddSource: true}},
		{"unknown level", "unknown", "true", Config{Level: logLevelDefault, AddSource: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.logLevel)
			t.Setenv("LOG_ADD_SOURCE", tc.addSource)

			cfg := ConfigFromEnv()
			if cfg != tc.expected {
				t.Errorf("expected %+v, got %+v", tc.expected, cfg)
			}
		})
	}
}

func TestInitStructureLogConfig(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	t.Setenv("LOG_LEVEL", "info")
	os.Unsetenv("LOG_ADD_SOURCE")

	handler := InitStructureLogConfig()
	if handler == nil {
		t.Error("expected non-nil handler")
	}
}

func TestPriorityCritical(t *testing.T) {
	attr := PriorityCritical()
	if attr.Key != "priority" || attr.Value.String() != "critical" {
		t.Errorf("unexpected priority attribute %v", attr)
	}
}
