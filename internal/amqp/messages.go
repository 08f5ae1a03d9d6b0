package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"smartspend/internal/core"
)

// EventType names what happened to a transaction.
type EventType string

const (
	EventCreated EventType = "created"
	EventDeleted EventType = "deleted"
)

// TransactionEvent is published after the in-memory ledger changes.
// Deleted events carry only the ID.
type TransactionEvent struct {
	Type        EventType `json:"type"`
	ID          int64     `json:"id"`
	Date        string    `json:"date,omitempty"`
	Kind        string    `json:"kind,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewCreatedEvent(t core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Type:        EventCreated,
		ID:          t.ID,
		Date:        t.Date.String(),
		Kind:        t.Kind.String(),
		Category:    t.Category,
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Timestamp:   time.Now().UTC(),
	}
}

func NewDeletedEvent(id int64) *TransactionEvent {
	return &TransactionEvent{
		Type:      EventDeleted,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// RoutingKey is "transaction.<type>".
func (e *TransactionEvent) RoutingKey() string {
	return fmt.Sprintf("transaction.%s", e.Type)
}

// ToJSON converts the message to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
