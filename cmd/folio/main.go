package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Serve a flat-file Markdown site",
		Long: `folio serves Markdown content through a route table written by an indexer.

Configuration is read from the environment (FOLIO_*, REDIS_URL, SENTRY_DSN).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		matchCmd(),
		versionCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s (%s)\n", version, commit)
		},
	}
}
