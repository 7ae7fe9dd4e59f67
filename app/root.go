// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-settings-admin",
	Short: "go-settings-admin is a web-based editor for runtime settings profiles",
	Long: `go-settings-admin is a web-based editor for database-backed runtime
settings profiles. The active profile is rendered into a generated configuration
overlay file and the web server is signalled to restart so it picks up the new
values.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
