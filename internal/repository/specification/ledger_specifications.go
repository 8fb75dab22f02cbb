package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserOwnedBy restricts a query to rows owned by one user.
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByPaymentReference matches a settlement's idempotency key.
type ByPaymentReference struct {
	Reference string
}

func (s ByPaymentReference) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stripe_payment_id = ?", s.Reference)
}
