package mapper

import (
	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/model"
)

type GenerationMapper struct{}

func NewGenerationMapper() *GenerationMapper {
	return &GenerationMapper{}
}

func (m *GenerationMapper) ToEntity(g *model.Generation) *entity.Generation {
	if g == nil {
		return nil
	}
	return &entity.Generation{
		Id:              g.Id,
		UserId:          g.UserId,
		Kind:            entity.GenerationKind(g.Kind),
		Prompt:          g.Prompt,
		NegativePrompt:  g.NegativePrompt,
		ImageSize:       g.ImageSize,
		Quality:         g.Quality,
		Resolution:      g.Resolution,
		DurationSeconds: g.DurationSeconds,
		Strength:        g.Strength,
		GuidanceScale:   g.GuidanceScale,
		InferenceSteps:  g.InferenceSteps,
		NumImages:       g.NumImages,
		LoraURL:         g.LoraURL,
		LoraScale:       g.LoraScale,
		Seed:            g.Seed,
		ResultURL:       g.ResultURL,
		Cost:            g.Cost,
		Status:          entity.GenerationStatus(g.Status),
		CreatedAt:       g.CreatedAt,
	}
}

func (m *GenerationMapper) ToModel(g *entity.Generation) *model.Generation {
	if g == nil {
		return nil
	}
	return &model.Generation{
		Id:              g.Id,
		UserId:          g.UserId,
		Kind:            string(g.Kind),
		Prompt:          g.Prompt,
		NegativePrompt:  g.NegativePrompt,
		ImageSize:       g.ImageSize,
		Quality:         g.Quality,
		Resolution:      g.Resolution,
		DurationSeconds: g.DurationSeconds,
		Strength:        g.Strength,
		GuidanceScale:   g.GuidanceScale,
		InferenceSteps:  g.InferenceSteps,
		NumImages:       g.NumImages,
		LoraURL:         g.LoraURL,
		LoraScale:       g.LoraScale,
		Seed:            g.Seed,
		ResultURL:       g.ResultURL,
		Cost:            g.Cost,
		Status:          string(g.Status),
		CreatedAt:       g.CreatedAt,
	}
}
