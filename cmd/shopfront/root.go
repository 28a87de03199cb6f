package main

import (
	"os"

	"github.com/shopfront/shopfront/internal/logging"
	"github.com/spf13/cobra"
)

// exitCodeUsage is returned when the environment cannot be used to run a command.
const exitCodeUsage = 2

var rootCmd = &cobra.Command{
	Use:               "shopfront",
	Short:             "Shopfront serves the storefront product pages and the admin analytics dashboard.",
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: prepareCommand,
}

func Execute() error {
	return rootCmd.Execute()
}

func prepareCommand(cmd *cobra.Command, _ []string) error {
	execCtx := commandExecutionContext{
		CommandPath:       cmd.CommandPath(),
		UsesStructuredLog: commandUsesStructuredLogging(cmd),
	}
	setCommandExecutionContext(execCtx)
	if !execCtx.UsesStructuredLog {
		return nil
	}

	if _, err := logging.BootstrapFromEnv(logging.BootstrapOptions{
		Command: execCtx.CommandPath,
		Writer:  os.Stdout,
	}); err != nil {
		return exitWith(exitCodeUsage, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, usersCmd)
}
