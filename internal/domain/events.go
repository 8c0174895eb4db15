package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kinds double as routing keys on the notification exchange.
const (
	EventCreated   = "event.created"
	EventDeleted   = "event.deleted"
	UserRegistered = "user.registered"
)

// Event is a side effect of a committed mutation. Services collect
// them during the transaction and hand the list to a Notifier only
// after commit, so a rollback never leaks a notification.
type Event struct {
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type EventPayload struct {
	EventID   uuid.UUID `json:"event_id"`
	Name      string    `json:"name"`
	CreatorID uuid.UUID `json:"creator_id,omitempty"`
}

type UserPayload struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// Notifier delivers domain events to interested outsiders. Delivery
// is best-effort; implementations must not fail the mutation.
type Notifier interface {
	Notify(ctx context.Context, events []Event)
}

func NewEvent(kind string, payload any) Event {
	return Event{Kind: kind, OccurredAt: time.Now(), Payload: payload}
}
