package model

import (
	"time"

	"github.com/google/uuid"
)

// UnresolvedGrant records a verified payment whose target user could not be
// resolved. The webhook is still acknowledged (to stop redelivery) and the
// grant waits here for manual reconciliation instead of being dropped.
type UnresolvedGrant struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StripeEventId   string    `gorm:"type:varchar(255);not null;index"`
	StripePaymentId string    `gorm:"type:varchar(255);not null;index"`
	SubjectUserId   string    `gorm:"type:varchar(255);not null"`
	CustomerEmail   *string   `gorm:"type:varchar(255)"`
	Credits         float64   `gorm:"type:numeric(12,2);not null"`
	Amount          float64   `gorm:"type:numeric(12,2);not null"`
	Resolved        bool      `gorm:"default:false;index"`
	CreatedAt       time.Time `gorm:"default:now();not null"`
}

func (UnresolvedGrant) TableName() string {
	return "unresolved_grants"
}
