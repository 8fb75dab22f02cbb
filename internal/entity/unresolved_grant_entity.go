package entity

import (
	"time"

	"github.com/google/uuid"
)

type UnresolvedGrant struct {
	Id              uuid.UUID
	StripeEventId   string
	StripePaymentId string
	SubjectUserId   string
	CustomerEmail   *string
	Credits         float64
	Amount          float64
	Resolved        bool
	CreatedAt       time.Time
}
