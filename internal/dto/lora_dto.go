package dto

import (
	"time"

	"github.com/google/uuid"
)

// TrainLoraRequest is parsed from a multipart form: the training images
// are zipped client-side and uploaded as a single archive field.
type TrainLoraRequest struct {
	Name           string
	TriggerWord    string
	ArchiveDataURL string
	Steps          *int
}

type TrainLoraResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	Cost   float64   `json:"cost"`
}

type LoraModelResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TriggerWord string    `json:"trigger_word"`
	Status      string    `json:"status"`
	ModelURL    *string   `json:"model_url"`
	CreatedAt   time.Time `json:"created_at"`
}
