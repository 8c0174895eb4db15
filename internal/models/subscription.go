package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription records that a user is registered for an event. The
// composite unique index enforces at most one row per (user, event)
// at the storage layer, which is what makes concurrent duplicate
// subscribes safe regardless of application-level checks.
type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_event" json:"user_id"`
	EventID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_user_event" json:"event_id"`
	SubscribedAt time.Time `gorm:"not null" json:"subscribed_at"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
