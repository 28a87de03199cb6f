package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopfront/shopfront/internal/config"
)

func TestEmitCommandError_StructuredForScopedCommands(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "info")
	setCommandExecutionContext(commandExecutionContext{
		CommandPath:       "shopfront serve",
		UsesStructuredLog: true,
	})
	t.Cleanup(resetCommandExecutionContext)

	var out bytes.Buffer
	emitCommandError(errors.New("boom"), "command failed", 1, &out)

	line := strings.TrimSpace(out.String())
	if line == "" {
		t.Fatal("expected structured log output")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if got := payload["app"]; got != "shopfront" {
		t.Fatalf("app = %v, want %q", got, "shopfront")
	}
	if got := payload["command"]; got != "shopfront serve" {
		t.Fatalf("command = %v, want %q", got, "shopfront serve")
	}
	if got := payload["exit_code"]; got != float64(1) {
		t.Fatalf("exit_code = %v, want %v", got, 1)
	}
	if got := payload["error"]; got != "boom" {
		t.Fatalf("error = %v, want %q", got, "boom")
	}
}

func TestEmitCommandError_FallsBackToJSONWhenLoggingEnvInvalid(t *testing.T) {
	t.Setenv("LOG_FORMAT", "invalid")
	t.Setenv("LOG_LEVEL", "info")
	setCommandExecutionContext(commandExecutionContext{
		CommandPath:       "shopfront migrate",
		UsesStructuredLog: true,
	})
	t.Cleanup(resetCommandExecutionContext)

	var out bytes.Buffer
	emitCommandError(errors.New("boom"), "command failed", 1, &out)

	line := strings.TrimSpace(out.String())
	if line == "" {
		t.Fatal("expected structured log output")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("expected JSON fallback log, got parse error: %v", err)
	}
}

func TestEmitCommandError_PlainOutputForNonScopedCommands(t *testing.T) {
	setCommandExecutionContext(commandExecutionContext{
		CommandPath:       "shopfront users bootstrap-admin",
		UsesStructuredLog: false,
	})
	t.Cleanup(resetCommandExecutionContext)

	var out bytes.Buffer
	emitCommandError(errors.New("plain boom"), "command failed", 1, &out)
	if got := out.String(); got != "plain boom\n" {
		t.Fatalf("output = %q, want %q", got, "plain boom\n")
	}
}

func TestEmitCommandError_CanceledOutputForNonScopedCommands(t *testing.T) {
	setCommandExecutionContext(commandExecutionContext{
		CommandPath:       "shopfront users bootstrap-admin",
		UsesStructuredLog: false,
	})
	t.Cleanup(resetCommandExecutionContext)

	var out bytes.Buffer
	emitCommandError(context.Canceled, "command canceled", exitCodeCanceled, &out)
	if got := out.String(); got != "canceled\n" {
		t.Fatalf("output = %q, want %q", got, "canceled\n")
	}
}

func TestExitCodeForError(t *testing.T) {
	t.Cleanup(resetCommandExecutionContext)
	resetCommandExecutionContext()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "plain", err: errors.New("boom"), want: 1},
		{name: "canceled", err: fmt.Errorf("serve: %w", context.Canceled), want: exitCodeCanceled},
		{name: "exit error", err: &exitError{code: 2, err: errors.New("bad LOG_LEVEL")}, want: 2},
		{name: "silent exit error", err: &exitError{code: 3, silent: true}, want: 3},
		{name: "invalid config", err: fmt.Errorf("load config: %w", config.ErrInvalid), want: exitCodeConfig},
		{name: "exit error wins over kind", err: exitWith(exitCodeUsage, config.ErrInvalid), want: exitCodeUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if got := exitCodeForError(tt.err, &out); got != tt.want {
				t.Fatalf("exitCodeForError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunMainReturnsZeroOnSuccess(t *testing.T) {
	var out bytes.Buffer
	if got := runMain(func() error { return nil }, &out); got != 0 {
		t.Fatalf("runMain() = %d, want 0", got)
	}
	if out.Len() != 0 {
		t.Fatalf("stderr = %q, want empty", out.String())
	}
}

func TestExitCodeForErrorLogsConfigFailure(t *testing.T) {
	t.Cleanup(resetCommandExecutionContext)
	setCommandExecutionContext(commandExecutionContext{CommandPath: "shopfront serve", UsesStructuredLog: true})
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "info")

	var out bytes.Buffer
	err := fmt.Errorf("%w: DATABASE_URL is required", config.ErrInvalid)
	if got := exitCodeForError(err, &out); got != exitCodeConfig {
		t.Fatalf("exitCodeForError() = %d, want %d", got, exitCodeConfig)
	}

	var entry map[string]any
	if err := json.Unmarshal(out.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line %q: %v", out.String(), err)
	}
	if entry["msg"] != "invalid configuration" {
		t.Fatalf("msg = %v, want %q", entry["msg"], "invalid configuration")
	}
	if entry["exit_code"] != float64(exitCodeConfig) {
		t.Fatalf("exit_code = %v, want %d", entry["exit_code"], exitCodeConfig)
	}
	if entry["command"] != "shopfront serve" {
		t.Fatalf("command = %v, want %q", entry["command"], "shopfront serve")
	}
}

func TestExitErrorCause(t *testing.T) {
	t.Parallel()

	fallback := errors.New("fallback")
	wrapped := errors.New("wrapped")
	if got := exitWith(2, wrapped).cause(fallback); got != wrapped {
		t.Fatalf("cause() = %v, want %v", got, wrapped)
	}
	if got := (&exitError{code: 2}).cause(fallback); got != fallback {
		t.Fatalf("cause() = %v, want %v", got, fallback)
	}
}
