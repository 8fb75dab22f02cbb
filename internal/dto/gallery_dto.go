package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListGenerationsRequest struct {
	Page     int
	PageSize int
	Kind     string
}

type GalleryItemResponse struct {
	Id        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Prompt    string    `json:"prompt"`
	ResultURL string    `json:"result_url"`
	Cost      float64   `json:"cost"`
	CreatedAt time.Time `json:"created_at"`
}

type ListGenerationsResponse struct {
	Items    []GalleryItemResponse `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}
