package contract

import (
	"context"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/repository/specification"
)

type LoraRepository interface {
	Create(ctx context.Context, lora *entity.LoraModel) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LoraModel, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoraModel, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
