// Package cli provides command-line interface setup for QueryDesk.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"querydesk/internal/api"
	"querydesk/internal/config"
	"querydesk/internal/credstore"
	"querydesk/internal/logger"
	"querydesk/internal/session"
)

// App represents the QueryDesk CLI application.
type App struct {
	LogLevel string
	LogFile  string
	TestMode bool
}

// NewApp creates a new QueryDesk CLI application.
func NewApp() *App {
	return &App{}
}

// CreateRootCommand creates and configures the root command.
func (app *App) CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "querydesk",
		Short: "QueryDesk - natural-language database queries from the terminal",
		Long: `QueryDesk is a client for an AI-assisted database-query backend.
Register database connections, ask questions in plain language, and review
the generated SQL, results, and visualizations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Configure(app.LogLevel, app.LogFile, app.TestMode)
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&app.TestMode, "test-mode", false, "Run in deterministic test mode")

	for _, flag := range []string{"log-level", "log-file", "test-mode"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", flag, err)
			os.Exit(1)
		}
	}

	app.addAuthCommands(rootCmd)
	app.addConnectionCommands(rootCmd)
	app.addChatCommand(rootCmd)
	app.addHistoryCommand(rootCmd)
	app.addHealthCommand(rootCmd)
	app.addVersionCommand(rootCmd)

	return rootCmd
}

// env bundles the client stack a command needs: configuration, credential
// store, API gateway, and session controller.
type env struct {
	cfg     *config.Config
	creds   credstore.Store
	gateway *api.Client
	ctrl    *session.Controller
}

// buildEnv wires the stack together. The credential store is injected into
// both the gateway (token reads) and the controller (token writes).
func (app *App) buildEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.TestMode = app.TestMode

	creds := credstore.NewFileStore(cfg.TokenPath())
	gateway := api.New(cfg.BaseURL, creds)
	ctrl := session.NewController(gateway, creds)

	return &env{cfg: cfg, creds: creds, gateway: gateway, ctrl: ctrl}, nil
}
