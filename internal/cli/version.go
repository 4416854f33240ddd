// Package cli provides command-line interface setup for QueryDesk.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"querydesk/internal/version"
)

// addVersionCommand adds the version command.
func (app *App) addVersionCommand(rootCmd *cobra.Command) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the version of QueryDesk with build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			detailed, _ := cmd.Flags().GetBool("detailed")
			if detailed {
				fmt.Println(version.GetInfo().String())
			} else {
				fmt.Printf("querydesk v%s\n", version.GetVersion())
			}
		},
	}

	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
	rootCmd.AddCommand(versionCmd)
}
