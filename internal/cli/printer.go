// Package cli provides command-line interface setup for QueryDesk.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"querydesk/pkg/querytypes"
)

var (
	userBadge      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).SetString("you")
	assistantBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).SetString("assistant")
	systemBadge    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).SetString("system")
	sqlStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// printTurn renders one conversation turn. Result tables and visualizations
// are HTML fragments produced by the backend; they are printed verbatim
// because sanitization belongs to the producer, not this client.
func printTurn(w io.Writer, turn querytypes.ConversationTurn) {
	badge := badgeFor(turn.Role)
	fmt.Fprintf(w, "%s %s\n", badge, turn.Content)

	if turn.Outcome == nil {
		return
	}
	outcome := turn.Outcome

	if outcome.Explanation != "" {
		fmt.Fprintf(w, "  %s\n", dimStyle.Render(outcome.Explanation))
	}
	if outcome.SQLQuery != "" && outcome.SQLQuery != querytypes.NotRelevantSQL {
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render("SQL:"), sqlStyle.Render(outcome.SQLQuery))
	}
	if outcome.ResultsTable != "" {
		fmt.Fprintln(w, outcome.ResultsTable)
	}
	if outcome.Visualization != "" {
		fmt.Fprintln(w, outcome.Visualization)
	}
}

func badgeFor(role querytypes.Role) string {
	switch role {
	case querytypes.RoleUser:
		return userBadge.String()
	case querytypes.RoleSystem:
		return systemBadge.String()
	default:
		return assistantBadge.String()
	}
}
