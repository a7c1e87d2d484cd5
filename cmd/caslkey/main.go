// Command caslkey scores a guest application offline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"caslkey/internal/platform/health"
)

const appName = "caslkey"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "CASL Key guest verification tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(scoreCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, health.Version)
		},
	})
	return cmd
}
