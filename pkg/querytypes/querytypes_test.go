package querytypes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationTurn_Escalatable(t *testing.T) {
	replayed := ConversationTurn{
		ID:            "assistant-0",
		Role:          RoleAssistant,
		Content:       "128 signups",
		CorrelationID: "c1",
	}
	assert.True(t, replayed.Escalatable())

	live := ConversationTurn{ID: "b7f3", Role: RoleAssistant, Content: "128 signups"}
	assert.False(t, live.Escalatable())
}

func TestQueryResponse_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"message": "Found 128 signups",
		"explanation": "Counted rows in the signups table",
		"is_graph_query": false,
		"sql_query": "SELECT COUNT(*) FROM signups",
		"suggest_email": true,
		"email_suggestion_message": "Large result set, email it?"
	}`

	var resp QueryResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	assert.Equal(t, "Found 128 signups", resp.Message)
	assert.Equal(t, "SELECT COUNT(*) FROM signups", resp.SQLQuery)
	assert.True(t, resp.SuggestEmail)
	assert.Empty(t, resp.ResultsTable)
}

func TestHistoryRecord_DecodesNestedResponseData(t *testing.T) {
	payload := `{
		"conversation_id": "c9",
		"page_name": "chat",
		"user_input": "Tell me a joke",
		"response_data": {
			"message": "I only do databases",
			"is_graph_query": false,
			"sql_query": "NOT_RELEVANT"
		},
		"created_at": "2025-06-15T12:00:00Z"
	}`

	var record HistoryRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &record))

	assert.Equal(t, "c9", record.ConversationID)
	assert.Equal(t, NotRelevantSQL, record.ResponseData.SQLQuery)
	assert.Equal(t, 2025, record.CreatedAt.Year())
}

func TestConversationTurn_OmitsEmptyOptionalFields(t *testing.T) {
	turn := ConversationTurn{ID: "b7f3", Role: RoleUser, Content: "hello"}

	raw, err := json.Marshal(turn)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "query_response")
	assert.NotContains(t, string(raw), "conversation_id")
}

func TestConnectionRequest_PasswordOmittedWhenEmpty(t *testing.T) {
	req := ConnectionRequest{ConnectionName: "prod", Host: "db.internal", Port: 5432}

	raw, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}
