package amqp

import (
	"encoding/json"
	"strings"
	"testing"

	"smartspend/internal/core"
)

func TestNewCreatedEvent(t *testing.T) {
	tx := core.Transaction{
		ID:          12,
		Date:        core.NewDate(2024, 3, 5),
		Kind:        core.Expense,
		Category:    "Food",
		Description: "groceries",
		Amount:      core.Money{Cents: 4599},
	}
	e := NewCreatedEvent(tx)
	if e.Type != EventCreated || e.ID != 12 || e.Date != "2024-03-05" || e.Kind != "expense" || e.AmountCents != 4599 {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.RoutingKey() != "transaction.created" {
		t.Errorf("unexpected routing key %q", e.RoutingKey())
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestDeletedEventJSON(t *testing.T) {
	e := NewDeletedEvent(7)
	body, err := e.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(body)
	if !strings.Contains(s, `"type":"deleted"`) || !strings.Contains(s, `"id":7`) {
		t.Errorf("unexpected body: %s", s)
	}
	if strings.Contains(s, "amount_cents") || strings.Contains(s, "category") {
		t.Errorf("deleted event should omit transaction fields: %s", s)
	}

	var back TransactionEvent
	if err := json.Unmarshal(body, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Type != EventDeleted || back.ID != 7 || back.RoutingKey() != "transaction.deleted" {
		t.Errorf("unexpected decoded event: %+v", back)
	}
}

func TestClientCloseNil(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Fatalf("Close on unconnected client: %v", err)
	}
}
