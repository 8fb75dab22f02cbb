package service

import (
	"context"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/repository/specification"
	"pepper-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	GetCredits(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		Credits:   user.Credits,
		CreatedAt: user.CreatedAt,
	}, nil
}

// GetCredits returns the balance for display. It is a snapshot only: every
// charge re-checks the balance atomically, so a stale read here can never
// overdraw the ledger.
func (s *userService) GetCredits(ctx context.Context, userId uuid.UUID) (*dto.CreditBalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.CreditBalanceResponse{Credits: user.Credits}, nil
}
