package unitofwork

import (
	"context"

	"pepper-ai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	GenerationRepository() contract.GenerationRepository
	LoraRepository() contract.LoraRepository
	CreditTransactionRepository() contract.CreditTransactionRepository
	UnresolvedGrantRepository() contract.UnresolvedGrantRepository
}
