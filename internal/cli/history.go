// Package cli provides command-line interface setup for QueryDesk.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"querydesk/internal/history"
)

// addHistoryCommand adds the history browsing command.
func (app *App) addHistoryCommand(rootCmd *cobra.Command) {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse persisted conversation history",
		Long: `Fetch the stored conversation records for a page context and browse them
with client-side search and statistics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search, _ := cmd.Flags().GetString("search")
			page, _ := cmd.Flags().GetString("page")
			limit, _ := cmd.Flags().GetInt("limit")
			showStats, _ := cmd.Flags().GetBool("stats")

			env, err := app.buildEnv()
			if err != nil {
				return err
			}
			if page == "" {
				page = env.cfg.PageName
			}
			if limit <= 0 {
				limit = env.cfg.HistoryLimit
			}

			records, err := env.gateway.History(cmd.Context(), page, limit)
			if err != nil {
				return err
			}

			filtered := history.Filter{Search: search, Page: page}.Apply(records)

			if showStats {
				stats := history.Collect(filtered)
				fmt.Printf("Total queries:      %d\n", stats.Total)
				fmt.Printf("Successful queries: %d\n", stats.Successful)
				fmt.Printf("Graph queries:      %d\n", stats.GraphQueries)
				fmt.Printf("Email suggestions:  %d\n", stats.EmailSuggestions)
				return nil
			}

			if len(filtered) == 0 {
				fmt.Println("No conversations found")
				return nil
			}

			now := time.Now()
			for _, record := range filtered {
				fmt.Printf("[%s] %s\n", history.RelativeDay(record.CreatedAt, now), record.UserInput)
				response := record.ResponseData
				if response.Message != "" {
					fmt.Printf("    %s\n", response.Message)
				}
				if response.SQLQuery != "" {
					fmt.Printf("    SQL: %s\n", response.SQLQuery)
				}
				fmt.Printf("    id=%s page=%s\n", record.ConversationID, record.PageName)
			}
			return nil
		},
	}

	historyCmd.Flags().String("search", "", "Filter by question or explanation text")
	historyCmd.Flags().String("page", "", "Page context to fetch (default from config)")
	historyCmd.Flags().Int("limit", 0, "Maximum records to fetch (default from config)")
	historyCmd.Flags().Bool("stats", false, "Show aggregate statistics instead of records")

	rootCmd.AddCommand(historyCmd)
}
