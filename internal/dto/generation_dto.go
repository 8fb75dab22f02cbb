package dto

import (
	"time"

	"github.com/google/uuid"
)

type TextToImageRequest struct {
	Prompt      string  `json:"prompt" validate:"required"`
	Quality     string  `json:"quality"`
	NumImages   int     `json:"num_images"`
	LoraModelId *string `json:"lora_model_id"`
}

// ImageToImageRequest is parsed from a multipart form: the source image
// arrives as a file field and is forwarded to the provider as a data URL.
type ImageToImageRequest struct {
	Prompt       string
	ImageDataURL string
	Strength     *float64
	LoraModelId  *string
}

type ImageToVideoRequest struct {
	Prompt       string
	ImageDataURL string
	Resolution   string
	Duration     int
}

type GenerationResponse struct {
	Id        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	ResultURL string    `json:"result_url"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}
