package contract

import (
	"context"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DebitCredits performs the check-and-decrement as a single conditional
	// UPDATE guarded by the current balance. It returns false when the guard
	// rejects the debit (insufficient balance), leaving the row untouched.
	DebitCredits(ctx context.Context, userId uuid.UUID, amount float64) (bool, error)

	// CreditCredits atomically increments a user's balance.
	CreditCredits(ctx context.Context, userId uuid.UUID, amount float64) error
}
