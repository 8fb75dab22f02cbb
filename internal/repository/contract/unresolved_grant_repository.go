package contract

import (
	"context"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/repository/specification"
)

type UnresolvedGrantRepository interface {
	Create(ctx context.Context, grant *entity.UnresolvedGrant) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnresolvedGrant, error)
}
