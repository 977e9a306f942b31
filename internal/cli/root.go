// filepath: internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// Version info
	Version   = "1.0.0"
	StartTime time.Time
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "mediacatalog",
	Short: "Media Catalog API",
	Long:  `A REST API for a catalog of movies and TV shows, with image uploads and basic user accounts.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	// RunE executes the main server logic.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	registerFlags(RootCmd.PersistentFlags())

	RootCmd.AddCommand(migrateCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(sweepCmd)
}
