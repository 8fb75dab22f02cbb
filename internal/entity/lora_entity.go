package entity

import (
	"time"

	"github.com/google/uuid"
)

type LoraStatus string

const (
	LoraStatusTraining  LoraStatus = "training"
	LoraStatusCompleted LoraStatus = "completed"
	LoraStatusFailed    LoraStatus = "failed"
)

type LoraModel struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Name         string
	TriggerWord  string
	Status       LoraStatus
	ModelURL     *string
	TrainingCost float64
	CreatedAt    time.Time
}
