package contract

import (
	"context"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GenerationRepository interface {
	Create(ctx context.Context, generation *entity.Generation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Generation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Generation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
