// Package cli provides command-line interface setup for QueryDesk.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"querydesk/pkg/querytypes"
)

// addAuthCommands adds login, register, logout, and whoami.
func (app *App) addAuthCommands(rootCmd *cobra.Command) {
	loginCmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session credential",
		Long: `Authenticate against the backend and persist the issued bearer token.
The password is read from the --password flag or prompted interactively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, _ := cmd.Flags().GetString("password")
			password, err := resolvePassword(password)
			if err != nil {
				return err
			}

			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			if err := env.ctrl.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}

			user := env.ctrl.CurrentUser()
			fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Email)
			return nil
		},
	}
	loginCmd.Flags().String("password", "", "Password (prompted when omitted)")

	registerCmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and log in",
		Long: `Create a new account and immediately log in with the same credentials.
A registration that succeeds but whose login fails reports the login failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			fullName, _ := cmd.Flags().GetString("full-name")
			password, _ := cmd.Flags().GetString("password")
			password, err := resolvePassword(password)
			if err != nil {
				return err
			}

			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			req := querytypes.RegisterRequest{
				Email:    email,
				Username: args[0],
				Password: password,
				FullName: fullName,
			}
			if err := env.ctrl.Register(cmd.Context(), req); err != nil {
				return err
			}

			user := env.ctrl.CurrentUser()
			fmt.Printf("Registered and logged in as %s\n", user.Username)
			return nil
		},
	}
	registerCmd.Flags().String("email", "", "Account email address")
	registerCmd.Flags().String("full-name", "", "Display name")
	registerCmd.Flags().String("password", "", "Password (prompted when omitted)")
	_ = registerCmd.MarkFlagRequired("email")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session credential",
		RunE: func(_ *cobra.Command, _ []string) error {
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			env.ctrl.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			env.ctrl.Resolve(cmd.Context())
			user, err := env.ctrl.RequireUser()
			if err != nil {
				return fmt.Errorf("not logged in")
			}
			fmt.Printf("%s (%s)\n", user.Username, user.Email)
			if user.FullName != "" {
				fmt.Println(user.FullName)
			}
			return nil
		},
	}

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// resolvePassword returns the given password or prompts for one on the
// terminal without echo.
func resolvePassword(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password = strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
