// Package events publishes change notifications after successful writes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	UserRegistered Type = "user.registered"
	ExpenseCreated Type = "expense.created"
	ExpenseDeleted Type = "expense.deleted"
	GoalCreated    Type = "goal.created"
	GoalUpdated    Type = "goal.updated"
	GoalDeleted    Type = "goal.deleted"
)

// Event is the envelope sent to subscribers. Type doubles as the routing key.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func New(t Type, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
