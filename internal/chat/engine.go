// Package chat owns the ordered conversation transcript for one page
// context. The engine reconciles persisted history with live turns, assigns
// stable per-turn identifiers, and tracks the single in-flight submission.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"querydesk/internal/logger"
	"querydesk/internal/testutils"
	"querydesk/pkg/querytypes"
)

// Precondition errors. These are rejected locally: no network call is made,
// no turn is appended, and the submission is dropped rather than queued.
var (
	ErrEmptyQuestion      = errors.New("question is empty")
	ErrNoConnections      = errors.New("no database connections selected")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// fallbackAssistantContent stands in for replayed responses whose message
// field is absent.
const fallbackAssistantContent = "Response received"

// Gateway is the slice of the API surface the engine depends on.
// *api.Client satisfies it.
type Gateway interface {
	SubmitQuery(ctx context.Context, req querytypes.QueryRequest) (*querytypes.QueryResponse, error)
	History(ctx context.Context, pageName string, limit int) ([]querytypes.HistoryRecord, error)
	SendEmail(ctx context.Context, req querytypes.EmailRequest) (*querytypes.EmailReceipt, error)
}

// Engine maintains the transcript for one page context. Turns are appended
// strictly at the end, never reordered and never deduplicated. The in-flight
// flag is checked and set under the lock before any network call, so two
// rapid submissions cannot both pass the precondition check.
type Engine struct {
	mu       sync.Mutex
	page     string
	turns    []querytypes.ConversationTurn
	inFlight bool
	gateway  Gateway
	testMode bool
	log      *log.Logger
}

// NewEngine creates an empty transcript engine for the given page context.
func NewEngine(gateway Gateway, pageName string, testMode bool) *Engine {
	return &Engine{
		page:     pageName,
		turns:    make([]querytypes.ConversationTurn, 0),
		gateway:  gateway,
		testMode: testMode,
		log:      logger.NewStyledLogger("Chat"),
	}
}

// Page returns the page context this transcript is scoped to.
func (e *Engine) Page() string {
	return e.page
}

// Turns returns a copy of the transcript in insertion order.
func (e *Engine) Turns() []querytypes.ConversationTurn {
	e.mu.Lock()
	defer e.mu.Unlock()
	turns := make([]querytypes.ConversationTurn, len(e.turns))
	copy(turns, e.turns)
	return turns
}

// InFlight reports whether a submission is currently outstanding.
func (e *Engine) InFlight() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight
}

// LoadHistory fetches the persisted records for this page context and
// replays each one as a user turn immediately followed by an assistant turn,
// preserving stored order. Replayed turn identifiers derive from record
// position, so repeated renders of the same history are stable. Calling
// LoadHistory again appends a second copy of the history; callers load once
// per mount. Returns the number of records replayed.
func (e *Engine) LoadHistory(ctx context.Context, limit int) (int, error) {
	records, err := e.gateway.History(ctx, e.page, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to load history: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for i, record := range records {
		outcome := record.ResponseData

		content := outcome.Message
		if content == "" {
			content = fallbackAssistantContent
		}

		e.append(querytypes.ConversationTurn{
			ID:        fmt.Sprintf("user-%d", i),
			Role:      querytypes.RoleUser,
			Content:   record.UserInput,
			Timestamp: record.CreatedAt,
		})
		e.append(querytypes.ConversationTurn{
			ID:            fmt.Sprintf("assistant-%d", i),
			Role:          querytypes.RoleAssistant,
			Content:       content,
			Timestamp:     record.CreatedAt,
			Outcome:       &outcome,
			CorrelationID: record.ConversationID,
		})
	}

	e.log.Debug("History replayed", "page", e.page, "records", len(records))
	return len(records), nil
}

// Submit validates the question, appends a user turn optimistically, and
// issues the query. On success the assistant turn carrying the full outcome
// is appended and returned; the caller inspects Outcome.SuggestEmail for the
// escalation suggestion. On failure a system turn embedding the error
// message is appended and the error is returned as a separate signal. The
// in-flight flag is cleared on every path before control returns.
func (e *Engine) Submit(ctx context.Context, question string, connectionIDs []string) (*querytypes.ConversationTurn, error) {
	e.mu.Lock()
	if strings.TrimSpace(question) == "" {
		e.mu.Unlock()
		return nil, ErrEmptyQuestion
	}
	if len(connectionIDs) == 0 {
		e.mu.Unlock()
		return nil, ErrNoConnections
	}
	if e.inFlight {
		e.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}

	e.inFlight = true
	e.append(querytypes.ConversationTurn{
		ID:        testutils.GenerateUUID(e.testMode),
		Role:      querytypes.RoleUser,
		Content:   question,
		Timestamp: testutils.GetCurrentTime(e.testMode),
	})
	e.mu.Unlock()

	resp, err := e.gateway.SubmitQuery(ctx, querytypes.QueryRequest{
		Question:              question,
		DatabaseConnectionIDs: connectionIDs,
		PageName:              e.page,
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false

	if err != nil {
		e.append(querytypes.ConversationTurn{
			ID:        testutils.GenerateUUID(e.testMode),
			Role:      querytypes.RoleSystem,
			Content:   fmt.Sprintf("Error: %s", err.Error()),
			Timestamp: testutils.GetCurrentTime(e.testMode),
		})
		return nil, err
	}

	turn := querytypes.ConversationTurn{
		ID:        testutils.GenerateUUID(e.testMode),
		Role:      querytypes.RoleAssistant,
		Content:   resp.Message,
		Timestamp: testutils.GetCurrentTime(e.testMode),
		Outcome:   resp,
	}
	e.append(turn)
	return &turn, nil
}

// append must be called with the lock held.
func (e *Engine) append(turn querytypes.ConversationTurn) {
	e.turns = append(e.turns, turn)
	logger.TranscriptAppend(e.page, string(turn.Role), turn.ID)
}
