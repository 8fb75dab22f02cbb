package model

import (
	"time"

	"github.com/google/uuid"
)

// LoraModel records a fine-tuning job initiated by a training spend. Status
// moves from training to completed/failed by an out-of-band provider signal;
// this service only writes the initiating row.
type LoraModel struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	TriggerWord  string    `gorm:"type:varchar(100);not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'training'"`
	ModelURL     *string   `gorm:"type:text"`
	TrainingCost float64   `gorm:"type:numeric(12,2);not null"`
	CreatedAt    time.Time `gorm:"default:now();not null"`
}

func (LoraModel) TableName() string {
	return "lora_models"
}
