package model

import (
	"time"

	"github.com/google/uuid"
)

// Generation is the immutable audit record of one spend attempt that reached
// the provider. Settings are typed per operation kind instead of an open JSON
// blob; fields that do not apply to a kind stay null.
type Generation struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind            string    `gorm:"type:varchar(20);not null;index"`
	Prompt          string    `gorm:"type:text;not null"`
	NegativePrompt  *string   `gorm:"type:text"`
	ImageSize       *string   `gorm:"type:varchar(20)"`
	Quality         *string   `gorm:"type:varchar(20)"`
	Resolution      *string   `gorm:"type:varchar(10)"`
	DurationSeconds *int
	Strength        *float64
	GuidanceScale   *float64
	InferenceSteps  *int
	NumImages       *int
	LoraURL         *string `gorm:"type:text"`
	LoraScale       *float64
	Seed            *int64
	ResultURL       string    `gorm:"type:text;not null"`
	Cost            float64   `gorm:"type:numeric(12,2);not null"`
	Status          string    `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time `gorm:"default:now();not null"`
}

func (Generation) TableName() string {
	return "generations"
}
