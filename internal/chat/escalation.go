package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"querydesk/pkg/querytypes"
)

// Escalation precondition errors, rejected locally without a network call.
var (
	ErrEmptyRecipient  = errors.New("recipient email is empty")
	ErrNoCorrelationID = errors.New("turn carries no correlation identifier")
)

// Escalation is the opt-in workflow for sharing one completed turn's result
// by email. It operates on a single turn at a time, keyed by that turn's
// backend-issued correlation identifier, and never mutates the transcript.
type Escalation struct {
	mu        sync.Mutex
	gateway   Gateway
	recipient string
}

// NewEscalation creates an escalation workflow bound to the gateway.
func NewEscalation(gateway Gateway) *Escalation {
	return &Escalation{gateway: gateway}
}

// SetRecipient stores the recipient address for the next escalation.
func (s *Escalation) SetRecipient(recipient string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipient = recipient
}

// Recipient returns the currently entered recipient address.
func (s *Escalation) Recipient() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipient
}

// Escalate emails the result behind the given turn to the stored recipient.
// Preconditions: a non-empty recipient and a turn carrying a correlation
// identifier. The recipient is cleared only on success; on failure it is
// left intact so the user can retry without retyping.
func (s *Escalation) Escalate(ctx context.Context, turn querytypes.ConversationTurn) (*querytypes.EmailReceipt, error) {
	s.mu.Lock()
	recipient := strings.TrimSpace(s.recipient)
	s.mu.Unlock()

	if recipient == "" {
		return nil, ErrEmptyRecipient
	}
	if !turn.Escalatable() {
		return nil, ErrNoCorrelationID
	}

	receipt, err := s.gateway.SendEmail(ctx, querytypes.EmailRequest{
		ChatHistoryID:  turn.CorrelationID,
		RecipientEmail: recipient,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.recipient = ""
	s.mu.Unlock()
	return receipt, nil
}
