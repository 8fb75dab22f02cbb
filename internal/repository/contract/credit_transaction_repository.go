package contract

import (
	"context"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/repository/specification"
)

type CreditTransactionRepository interface {
	Create(ctx context.Context, transaction *entity.CreditTransaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CreditTransaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
