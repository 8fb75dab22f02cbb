package mapper

import (
	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/model"
)

type LoraMapper struct{}

func NewLoraMapper() *LoraMapper {
	return &LoraMapper{}
}

func (m *LoraMapper) ToEntity(l *model.LoraModel) *entity.LoraModel {
	if l == nil {
		return nil
	}
	return &entity.LoraModel{
		Id:           l.Id,
		UserId:       l.UserId,
		Name:         l.Name,
		TriggerWord:  l.TriggerWord,
		Status:       entity.LoraStatus(l.Status),
		ModelURL:     l.ModelURL,
		TrainingCost: l.TrainingCost,
		CreatedAt:    l.CreatedAt,
	}
}

func (m *LoraMapper) ToModel(l *entity.LoraModel) *model.LoraModel {
	if l == nil {
		return nil
	}
	return &model.LoraModel{
		Id:           l.Id,
		UserId:       l.UserId,
		Name:         l.Name,
		TriggerWord:  l.TriggerWord,
		Status:       string(l.Status),
		ModelURL:     l.ModelURL,
		TrainingCost: l.TrainingCost,
		CreatedAt:    l.CreatedAt,
	}
}
