// Package cli provides command-line interface setup for QueryDesk.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"querydesk/internal/chat"
	"querydesk/pkg/querytypes"
)

// addChatCommand adds the interactive chat command.
func (app *App) addChatCommand(rootCmd *cobra.Command) {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Ask natural-language questions against your databases",
		Long: `Start an interactive conversation. Persisted history for the page context
is replayed first, then each line is submitted as a question against the
selected database connections.

In-session commands:
  /email <recipient>   mail the most recent shareable result
  /exit                leave the conversation`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			connectionIDs, _ := cmd.Flags().GetStringSlice("connections")
			page, _ := cmd.Flags().GetString("page")
			noHistory, _ := cmd.Flags().GetBool("no-history")
			limit, _ := cmd.Flags().GetInt("limit")
			return app.runChat(cmd, connectionIDs, page, noHistory, limit)
		},
	}

	chatCmd.Flags().StringSlice("connections", nil, "Database connection ids to query (required)")
	chatCmd.Flags().String("page", "", "Page context for the transcript (default from config)")
	chatCmd.Flags().Bool("no-history", false, "Skip replaying persisted history")
	chatCmd.Flags().Int("limit", 0, "Maximum history records to replay (default from config)")
	_ = chatCmd.MarkFlagRequired("connections")

	rootCmd.AddCommand(chatCmd)
}

func (app *App) runChat(cmd *cobra.Command, connectionIDs []string, page string, noHistory bool, limit int) error {
	ctx := cmd.Context()

	env, err := app.buildEnv()
	if err != nil {
		return err
	}
	env.ctrl.Resolve(ctx)
	user, err := env.ctrl.RequireUser()
	if err != nil {
		return fmt.Errorf("please log in first (querydesk login <username>)")
	}

	if page == "" {
		page = env.cfg.PageName
	}
	if limit <= 0 {
		limit = env.cfg.HistoryLimit
	}

	engine := chat.NewEngine(env.gateway, page, app.TestMode)
	escalation := chat.NewEscalation(env.gateway)

	if !noHistory {
		if _, err := engine.LoadHistory(ctx, limit); err != nil {
			// A history failure degrades to an empty transcript; the
			// conversation itself must stay usable.
			fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
		}
		for _, turn := range engine.Turns() {
			printTurn(os.Stdout, turn)
		}
	}

	fmt.Printf("Connected as %s. Ask a question about your data, or /exit to quit.\n", user.Username)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("query> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/exit", line == "/quit":
			return nil
		case strings.HasPrefix(line, "/email"):
			app.handleEmail(cmd, engine, escalation, strings.TrimSpace(strings.TrimPrefix(line, "/email")))
			continue
		}

		turn, err := engine.Submit(ctx, line, connectionIDs)
		if err != nil {
			app.reportSubmitError(engine, err)
			continue
		}

		printTurn(os.Stdout, *turn)
		if turn.Outcome != nil && turn.Outcome.SuggestEmail {
			hint := turn.Outcome.EmailSuggestionMessage
			if hint == "" {
				hint = "This data might be useful to share via email."
			}
			fmt.Printf("%s Use /email <recipient> to share it.\n", hint)
		}
	}
	return scanner.Err()
}

// reportSubmitError distinguishes local precondition rejections (inline
// notice, nothing appended) from network failures (already recorded in the
// transcript as a system turn).
func (app *App) reportSubmitError(engine *chat.Engine, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyQuestion):
		fmt.Println("Please enter a question.")
	case errors.Is(err, chat.ErrNoConnections):
		fmt.Println("Please select at least one database connection.")
	case errors.Is(err, chat.ErrSubmissionInFlight):
		fmt.Println("Still working on the previous question.")
	default:
		turns := engine.Turns()
		if len(turns) > 0 {
			printTurn(os.Stdout, turns[len(turns)-1])
		}
	}
}

// handleEmail escalates the most recent turn carrying a correlation id.
func (app *App) handleEmail(cmd *cobra.Command, engine *chat.Engine, escalation *chat.Escalation, recipient string) {
	escalation.SetRecipient(recipient)

	target, ok := lastEscalatable(engine.Turns())
	if !ok {
		fmt.Println("No shareable result in this conversation yet.")
		return
	}

	receipt, err := escalation.Escalate(cmd.Context(), target)
	switch {
	case errors.Is(err, chat.ErrEmptyRecipient):
		fmt.Println("Usage: /email <recipient>")
	case err != nil:
		fmt.Printf("Email failed: %s\n", err)
	default:
		fmt.Printf("Query results sent to %s\n", receipt.EmailSentTo)
	}
}

func lastEscalatable(turns []querytypes.ConversationTurn) (querytypes.ConversationTurn, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Escalatable() {
			return turns[i], true
		}
	}
	return querytypes.ConversationTurn{}, false
}
