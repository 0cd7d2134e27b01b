// Package events publishes domain events after changes have been committed.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Type is the type of an event. It is also used as routing key.
type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionUpdated Type = "transaction.updated"
	TransactionDeleted Type = "transaction.deleted"
	BudgetCreated      Type = "budget.created"
	BudgetUpdated      Type = "budget.updated"
	BudgetDeleted      Type = "budget.deleted"
	BudgetExceeded     Type = "budget.exceeded"
)

// Event is a change that has happened.
type Event struct {
	Type       Type      `json:"type"`
	OwnerID    uuid.UUID `json:"ownerId"`
	ResourceID uuid.UUID `json:"resourceId"`
	Timestamp  time.Time `json:"timestamp"`
	Data       any       `json:"data,omitempty"`
}

// New creates an event with the current time.
func New(t Type, ownerID, resourceID uuid.UUID, data any) Event {
	return Event{
		Type:       t,
		OwnerID:    ownerID,
		ResourceID: resourceID,
		Timestamp:  time.Now().UTC(),
		Data:       data,
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher sends events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Emit publishes the event. Failures are logged, not returned, as the
// change the event describes has already happened.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}

	err := p.Publish(ctx, e)
	if err != nil {
		log.Error().Err(err).Str("type", string(e.Type)).Str("resource", e.ResourceID.String()).Msg("publishing event failed")
	}
}

// Noop discards all events.
type Noop struct{}

// Publish drops the event.
func (Noop) Publish(context.Context, Event) error { return nil }

// Close does nothing.
func (Noop) Close() error { return nil }

// Recorder keeps all published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Event(nil), r.events...)
}

// Types returns the types of the recorded events in order.
func (r *Recorder) Types() []Type {
	events := r.Events()
	types := make([]Type, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}
