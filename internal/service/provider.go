package service

import (
	"context"

	"pepper-ai-be/pkg/fal"
)

// GenerationProvider is the slice of the fal client the generation service
// needs. Kept as an interface so tests can run without the network.
type GenerationProvider interface {
	TextToImage(ctx context.Context, input fal.TextToImageInput) (string, error)
	ImageToImage(ctx context.Context, input fal.ImageToImageInput) (string, error)
	ImageToVideo(ctx context.Context, input fal.ImageToVideoInput) (string, error)
}

type TrainingProvider interface {
	TrainLora(ctx context.Context, input fal.LoraTrainingInput) error
}
