package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopfront/shopfront/internal/config"
	"github.com/shopfront/shopfront/internal/logging"
)

const (
	// exitCodeConfig follows sysexits EX_CONFIG.
	exitCodeConfig   = 78
	exitCodeCanceled = 130
)

func main() {
	if code := runMain(Execute, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func runMain(execute func() error, stderr io.Writer) int {
	if err := execute(); err != nil {
		return exitCodeForError(err, stderr)
	}
	return 0
}

// exitCodeForError reports the process exit code for err and writes it to
// stderr the way the current command logs.
func exitCodeForError(err error, stderr io.Writer) int {
	ee := classifyError(err)
	if !ee.silent {
		emitCommandError(ee.cause(err), failureMessage(ee.code), ee.code, stderr)
	}
	return ee.code
}

// classifyError maps a command error to its exit status. Explicit exit
// errors win over error kinds found in the chain.
func classifyError(err error) *exitError {
	var ee *exitError
	switch {
	case errors.As(err, &ee):
		return ee
	case errors.Is(err, context.Canceled):
		return exitWith(exitCodeCanceled, err)
	case errors.Is(err, config.ErrInvalid):
		return exitWith(exitCodeConfig, err)
	default:
		return exitWith(1, err)
	}
}

func failureMessage(code int) string {
	switch code {
	case exitCodeCanceled:
		return "command canceled"
	case exitCodeConfig:
		return "invalid configuration"
	default:
		return "command failed"
	}
}

func emitCommandError(err error, message string, exitCode int, stderr io.Writer) {
	ctx := currentCommandExecutionContext()
	if ctx.UsesStructuredLog {
		loggerForFatalPath(ctx, stderr).Error(message, "exit_code", exitCode, "error", err)
		return
	}

	if exitCode == exitCodeCanceled {
		fmt.Fprintln(stderr, "canceled")
		return
	}
	fmt.Fprintln(stderr, err)
}

// loggerForFatalPath rebuilds the command logger on stderr. A broken LOG_*
// environment still yields a JSON logger so the failure is reported.
func loggerForFatalPath(ctx commandExecutionContext, stderr io.Writer) *slog.Logger {
	cfg, err := logging.LoadConfigFromEnv()
	if err != nil {
		cfg = logging.DefaultConfig()
	}
	return logging.NewLogger(cfg, stderr, ctx.CommandPath)
}
