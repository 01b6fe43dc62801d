// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-event-admin",
	Short: "GoEvent-Admin is the backend service for event management",
	Long: `GoEvent-Admin is the backend service for an event-management platform.
It serves uploaded assets and documents from cloud or local storage,
manages typed configuration settings and delivers transactional email.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
