package entity

import (
	"time"

	"github.com/google/uuid"
)

type GenerationKind string

const (
	GenerationKindTextToImage  GenerationKind = "text2img"
	GenerationKindImageToImage GenerationKind = "img2img"
	GenerationKindImageToVideo GenerationKind = "img2video"
)

type GenerationStatus string

const (
	GenerationStatusCompleted GenerationStatus = "completed"
	GenerationStatusFailed    GenerationStatus = "failed"
)

type Generation struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Kind            GenerationKind
	Prompt          string
	NegativePrompt  *string
	ImageSize       *string
	Quality         *string
	Resolution      *string
	DurationSeconds *int
	Strength        *float64
	GuidanceScale   *float64
	InferenceSteps  *int
	NumImages       *int
	LoraURL         *string
	LoraScale       *float64
	Seed            *int64
	ResultURL       string
	Cost            float64
	Status          GenerationStatus
	CreatedAt       time.Time
}
