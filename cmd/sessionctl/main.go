package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sessionctl",
		Short: "Inspect, sign and serve sessionkit sessions",
		Long: `sessionctl works with sessionkit session cookies.

  • sign a set of attributes into a cookie value
  • verify and decode a cookie value
  • run a demo server wired from SESSION_* environment variables`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		signCmd(),
		inspectCmd(),
		serveCmd(),
		versionCmd(),
	)

	return rootCmd
}
