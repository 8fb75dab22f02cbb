package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Credits   float64   `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

type CreditBalanceResponse struct {
	Credits float64 `json:"credits"`
}
