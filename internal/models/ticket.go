package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is the opaque credential proving an active subscription.
// Exactly one ticket exists per subscription; both unique indexes are
// load-bearing (1:1 link, globally unique code).
type Ticket struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SubscriptionID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"subscription_id"`
	Code           string     `gorm:"size:64;not null;uniqueIndex" json:"code"`
	IssuedAt       time.Time  `gorm:"not null" json:"issued_at"`
	UsedAt         *time.Time `json:"used_at,omitempty"`

	Subscription *Subscription `gorm:"foreignKey:SubscriptionID" json:"subscription,omitempty"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
