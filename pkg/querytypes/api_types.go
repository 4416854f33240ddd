// Package querytypes defines the shared wire and domain types for QueryDesk.
// This file contains the request and response shapes of the backend REST API.
// Field names and JSON tags follow the backend contract exactly.
package querytypes

import "time"

// User represents an authenticated account as returned by the backend.
type User struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest carries the fields required to create a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest carries username/password credentials for token issuance.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the backend's answer to a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DatabaseConnection is a registered database connection as the backend
// returns it. The password is write-only and never present here.
type DatabaseConnection struct {
	DBID           string     `json:"db_id"`
	ConnectionName string     `json:"connection_name"`
	Host           string     `json:"host"`
	Port           int        `json:"port"`
	DatabaseName   string     `json:"database_name"`
	Username       string     `json:"username"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// ConnectionRequest carries the fields accepted on connection create and
// update. Password is accepted here but never echoed back by the backend.
type ConnectionRequest struct {
	ConnectionName string `json:"connection_name"`
	Host           string `json:"host"`
	Port           int    `json:"port"`
	DatabaseName   string `json:"database_name"`
	Username       string `json:"username"`
	Password       string `json:"password,omitempty"`
}

// ConnectionTestResult reports the outcome of probing a stored connection.
type ConnectionTestResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StatusMessage is the generic acknowledgement shape for mutations that
// return no entity (connection delete, for example).
type StatusMessage struct {
	Message string `json:"message"`
}

// QueryRequest is the body of a natural-language query submission.
type QueryRequest struct {
	Question              string   `json:"question"`
	DatabaseConnectionIDs []string `json:"database_connection_ids"`
	PageName              string   `json:"page_name"`
}

// NotRelevantSQL is the sentinel the backend places in QueryResponse.SQLQuery
// when the question did not translate into a database query.
const NotRelevantSQL = "NOT_RELEVANT"

// QueryResponse is the backend's answer to a query submission. ResultsTable
// and Visualization are pre-rendered HTML fragments the client passes through
// verbatim; the backend is the trusted producer of that markup.
type QueryResponse struct {
	Message                string `json:"message"`
	Explanation            string `json:"explanation"`
	ResultsTable           string `json:"results_table,omitempty"`
	IsGraphQuery           bool   `json:"is_graph_query"`
	SQLQuery               string `json:"sql_query,omitempty"`
	SuggestEmail           bool   `json:"suggest_email,omitempty"`
	EmailSuggestionMessage string `json:"email_suggestion_message,omitempty"`
	Visualization          string `json:"visualization,omitempty"`
}

// HistoryRecord is one persisted conversation entry. ConversationID doubles
// as the correlation identifier for the email escalation workflow.
type HistoryRecord struct {
	ConversationID string        `json:"conversation_id"`
	PageName       string        `json:"page_name"`
	UserInput      string        `json:"user_input"`
	ResponseData   QueryResponse `json:"response_data"`
	CreatedAt      time.Time     `json:"created_at"`
}

// EmailRequest asks the backend to mail a stored result to a recipient.
type EmailRequest struct {
	ChatHistoryID  string `json:"chat_history_id"`
	RecipientEmail string `json:"recipient_email"`
}

// EmailReceipt confirms a delivery request.
type EmailReceipt struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	EmailSentTo string `json:"email_sent_to"`
}

// TableSet describes the tables visible through one database connection.
type TableSet struct {
	Tables map[string]any `json:"tables"`
}

// ColumnSet describes the columns visible through one database connection.
type ColumnSet struct {
	Columns map[string]any `json:"columns"`
}

// HealthStatus is the backend liveness report.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
