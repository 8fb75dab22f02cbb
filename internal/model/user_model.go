package model

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the identity provider's account and owns the authoritative
// credit balance. Credits only move through the conditional debit/credit
// statements in the user repository.
type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Credits   float64   `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
