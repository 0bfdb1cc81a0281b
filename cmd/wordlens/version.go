package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordlens/internal/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wordlens %s\n", app.BuildVersion())
			return nil
		},
	}
}
