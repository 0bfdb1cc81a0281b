package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wordlens",
		Short:         "Dictionary lookups in the browser, over JSON and in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newPruneCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
