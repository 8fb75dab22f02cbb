package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
)

type CreditTransaction struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Amount          float64
	Credits         float64
	StripePaymentId string
	PackageId       *string
	Status          TransactionStatus
	CreatedAt       time.Time
}
