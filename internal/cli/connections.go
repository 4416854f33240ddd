// Package cli provides command-line interface setup for QueryDesk.
package cli

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"querydesk/pkg/querytypes"
)

var (
	activeBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).SetString("active")
	inactiveBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).SetString("inactive")
)

// addConnectionCommands adds the connections command group.
func (app *App) addConnectionCommands(rootCmd *cobra.Command) {
	connectionsCmd := &cobra.Command{
		Use:   "connections",
		Short: "Manage database connections",
		Long:  `List, register, update, remove, and test database connections.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered database connections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			conns, err := env.gateway.ListConnections(cmd.Context())
			if err != nil {
				return err
			}
			if len(conns) == 0 {
				fmt.Println("No database connections registered")
				return nil
			}
			for _, conn := range conns {
				badge := inactiveBadge
				if conn.IsActive {
					badge = activeBadge
				}
				fmt.Printf("%s  %s  %s:%d/%s  user=%s  [%s]\n",
					conn.DBID, conn.ConnectionName, conn.Host, conn.Port,
					conn.DatabaseName, conn.Username, badge)
			}
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new database connection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := connectionRequestFromFlags(cmd)
			if err != nil {
				return err
			}
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			conn, err := env.gateway.CreateConnection(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created connection %s (%s)\n", conn.ConnectionName, conn.DBID)
			return nil
		},
	}
	addConnectionFlags(addCmd, true)

	updateCmd := &cobra.Command{
		Use:   "update <connection-id>",
		Short: "Update a database connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := connectionRequestFromFlags(cmd)
			if err != nil {
				return err
			}
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			conn, err := env.gateway.UpdateConnection(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Printf("Updated connection %s\n", conn.DBID)
			return nil
		},
	}
	addConnectionFlags(updateCmd, false)

	rmCmd := &cobra.Command{
		Use:   "rm <connection-id>",
		Short: "Remove a database connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			msg, err := env.gateway.DeleteConnection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if msg.Message != "" {
				fmt.Println(msg.Message)
			} else {
				fmt.Println("Connection removed")
			}
			return nil
		},
	}

	testCmd := &cobra.Command{
		Use:   "test <connection-id>",
		Short: "Probe a database connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			result, err := env.gateway.TestConnection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", result.Status, result.Message)
			return nil
		},
	}

	tablesCmd := &cobra.Command{
		Use:   "tables <connection-id>",
		Short: "List tables visible through a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			tables, err := env.gateway.Tables(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, name := range sortedKeys(tables.Tables) {
				fmt.Println(name)
			}
			return nil
		},
	}

	columnsCmd := &cobra.Command{
		Use:   "columns <connection-id>",
		Short: "List columns visible through a connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			columns, err := env.gateway.Columns(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, name := range sortedKeys(columns.Columns) {
				fmt.Println(name)
			}
			return nil
		},
	}

	connectionsCmd.AddCommand(listCmd, addCmd, updateCmd, rmCmd, testCmd, tablesCmd, columnsCmd)
	rootCmd.AddCommand(connectionsCmd)
}

func addConnectionFlags(cmd *cobra.Command, required bool) {
	cmd.Flags().String("name", "", "Human-readable connection label")
	cmd.Flags().String("host", "", "Database host")
	cmd.Flags().Int("port", 5432, "Database port")
	cmd.Flags().String("database", "", "Database name")
	cmd.Flags().String("username", "", "Database username")
	cmd.Flags().String("db-password", "", "Database password (write-only)")
	if required {
		for _, flag := range []string{"name", "host", "database", "username"} {
			_ = cmd.MarkFlagRequired(flag)
		}
	}
}

func connectionRequestFromFlags(cmd *cobra.Command) (querytypes.ConnectionRequest, error) {
	name, _ := cmd.Flags().GetString("name")
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	database, _ := cmd.Flags().GetString("database")
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("db-password")

	return querytypes.ConnectionRequest{
		ConnectionName: name,
		Host:           host,
		Port:           port,
		DatabaseName:   database,
		Username:       username,
		Password:       password,
	}, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
