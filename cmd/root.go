// Package cmd holds the go-storefront command line.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand assembles the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "go-storefront",
		Short: "Storefront server with a single-password admin console",
		// Running with no subcommand starts the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewHashPasswordCommand())

	return rootCmd
}
