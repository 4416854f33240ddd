// Package querytypes defines conversation transcript types for QueryDesk.
// This file contains the turn model used by the conversation engine to merge
// persisted history with live interaction.
package querytypes

import "time"

// Role identifies the author of a conversation turn.
type Role string

// Turn roles. A turn's role is set at creation and never changes.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ConversationTurn is the atomic unit of a transcript.
//
// ID is client-assigned and stable for the turn's lifetime: replayed turns
// derive it from record position, live turns get a fresh UUID. Outcome is set
// only on assistant turns that resulted from a backend query. CorrelationID
// is present only when the backend issued one and is the precondition for the
// email escalation workflow.
type ConversationTurn struct {
	ID            string         `json:"id"`
	Role          Role           `json:"role"`
	Content       string         `json:"content"`
	Timestamp     time.Time      `json:"timestamp"`
	Outcome       *QueryResponse `json:"query_response,omitempty"`
	CorrelationID string         `json:"conversation_id,omitempty"`
}

// Escalatable reports whether the email escalation workflow can target this
// turn. Only turns carrying a backend-issued correlation id qualify.
func (t ConversationTurn) Escalatable() bool {
	return t.CorrelationID != ""
}
