package main

import (
	"sync"

	"github.com/spf13/cobra"
)

// commandExecutionContext describes the command being run, for the error path
// in main that runs after cobra has returned.
type commandExecutionContext struct {
	CommandPath       string
	UsesStructuredLog bool
}

var (
	commandCtxMu sync.RWMutex
	commandCtx   commandExecutionContext
)

func setCommandExecutionContext(ctx commandExecutionContext) {
	commandCtxMu.Lock()
	defer commandCtxMu.Unlock()
	commandCtx = ctx
}

func resetCommandExecutionContext() {
	setCommandExecutionContext(commandExecutionContext{})
}

func currentCommandExecutionContext() commandExecutionContext {
	commandCtxMu.RLock()
	defer commandCtxMu.RUnlock()
	return commandCtx
}

// structuredLogAnnotation marks long-running commands whose output is read by
// log collectors rather than people.
const structuredLogAnnotation = "shopfront/structured-log"

func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	return cmd.Annotations[structuredLogAnnotation] == "true"
}

func structuredLogging() map[string]string {
	return map[string]string{structuredLogAnnotation: "true"}
}
