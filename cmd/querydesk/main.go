// Package main provides the QueryDesk CLI application entry point.
// QueryDesk is a terminal client for an AI-assisted database-query backend:
// it manages authentication, database connections, and natural-language
// query conversations.
package main

import (
	"os"

	"querydesk/internal/cli"
)

func main() {
	app := cli.NewApp()
	rootCmd := app.CreateRootCommand()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
