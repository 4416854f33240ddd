package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRootCommand_Wiring(t *testing.T) {
	rootCmd := NewApp().CreateRootCommand()

	assert.Equal(t, "querydesk", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"login", "register", "logout", "whoami", "connections", "chat", "history", "health", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestCreateRootCommand_PersistentFlags(t *testing.T) {
	rootCmd := NewApp().CreateRootCommand()

	for _, flag := range []string{"log-level", "log-file", "test-mode"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestConnectionsCommand_Subcommands(t *testing.T) {
	rootCmd := NewApp().CreateRootCommand()

	var connections *cobra.Command
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "connections" {
			connections = cmd
		}
	}
	require.NotNil(t, connections)

	names := make(map[string]bool)
	for _, cmd := range connections.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"list", "add", "update", "rm", "test", "tables", "columns"} {
		assert.True(t, names[want], "missing connections subcommand %s", want)
	}
}

func TestChatCommand_Flags(t *testing.T) {
	rootCmd := NewApp().CreateRootCommand()

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() != "chat" {
			continue
		}
		for _, flag := range []string{"connections", "page", "no-history", "limit"} {
			assert.NotNil(t, cmd.Flags().Lookup(flag), "missing chat flag %s", flag)
		}
		return
	}
	t.Fatal("chat command not registered")
}
