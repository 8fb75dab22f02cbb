package model

import (
	"time"

	"github.com/google/uuid"
)

// CreditTransaction is the immutable settlement record for one confirmed
// payment. The unique index on the payment reference is what makes webhook
// replays idempotent at the store boundary.
type CreditTransaction struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount          float64   `gorm:"type:numeric(12,2);not null"`
	Credits         float64   `gorm:"type:numeric(12,2);not null"`
	StripePaymentId string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PackageId       *string   `gorm:"type:varchar(50)"`
	Status          string    `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time `gorm:"default:now();not null"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
