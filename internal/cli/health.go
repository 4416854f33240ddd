// Package cli provides command-line interface setup for QueryDesk.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// addHealthCommand adds the backend liveness check.
func (app *App) addHealthCommand(rootCmd *cobra.Command) {
	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			status, err := env.gateway.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", status.Status, status.Message)
			return nil
		},
	}

	rootCmd.AddCommand(healthCmd)
}
