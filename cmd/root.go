// Package cmd defines the flow-manager command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flow-manager",
	Short: "Flow Manager - workflow orchestration microservice",
	Long: `Flow Manager executes declarative flows: named tasks routed by
outcome-based conditions until a terminal marker is reached.

Run 'flow-manager serve' to start the HTTP API, or
'flow-manager validate <file>' to check a definition offline.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
