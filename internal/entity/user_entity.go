package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id        uuid.UUID
	Email     string
	Credits   float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
