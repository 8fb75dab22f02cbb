package service

import (
	"context"
	"time"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/pkg/logger"
	"pepper-ai-be/internal/pricing"
	"pepper-ai-be/internal/repository/specification"
	"pepper-ai-be/internal/repository/unitofwork"
	"pepper-ai-be/pkg/events"
	"pepper-ai-be/pkg/fal"
	pkgNats "pepper-ai-be/pkg/nats"

	"github.com/google/uuid"
)

type ILoraService interface {
	Train(ctx context.Context, userId uuid.UUID, req *dto.TrainLoraRequest) (*dto.TrainLoraResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.LoraModelResponse, error)
}

type loraService struct {
	uowFactory     unitofwork.RepositoryFactory
	provider       TrainingProvider
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewLoraService(
	uowFactory unitofwork.RepositoryFactory,
	provider TrainingProvider,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ILoraService {
	return &loraService{
		uowFactory:     uowFactory,
		provider:       provider,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// Train charges the flat training cost and records the model in "training"
// state. The same charge protocol as generations applies: no successful
// provider submission, no debit.
func (s *loraService) Train(ctx context.Context, userId uuid.UUID, req *dto.TrainLoraRequest) (*dto.TrainLoraResponse, error) {
	cost := pricing.LoraTrainingCost

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Credits < cost {
		return nil, &InsufficientCreditsError{Cost: cost, Balance: user.Credits}
	}

	input := fal.LoraTrainingInput{
		ImageDataURL:   req.ArchiveDataURL,
		DefaultCaption: req.TriggerWord,
	}
	if req.Steps != nil {
		input.Steps = *req.Steps
	}

	if err := s.provider.TrainLora(ctx, input); err != nil {
		s.log.Error("lora", "training submission failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return nil, &GenerationFailedError{Err: err}
	}

	lora := &entity.LoraModel{
		Id:           uuid.New(),
		UserId:       userId,
		Name:         req.Name,
		TriggerWord:  req.TriggerWord,
		Status:       entity.LoraStatusTraining,
		TrainingCost: cost,
		CreatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	debited, err := uow.UserRepository().DebitCredits(ctx, userId, cost)
	if err != nil {
		return nil, err
	}
	if !debited {
		balance := user.Credits
		if current, rerr := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}); rerr == nil && current != nil {
			balance = current.Credits
		}
		s.log.Warn("lora", "debit lost race after training submission", map[string]interface{}{
			"user_id": userId,
			"cost":    cost,
			"balance": balance,
		})
		return nil, &InsufficientCreditsError{Cost: cost, Balance: balance}
	}

	if err := uow.LoraRepository().Create(ctx, lora); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "LORA_TRAINING_STARTED",
			Data: map[string]interface{}{
				"lora_id":      lora.Id,
				"user_id":      userId,
				"trigger_word": lora.TriggerWord,
				"cost":         cost,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("lora", "failed to publish LORA_TRAINING_STARTED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.TrainLoraResponse{
		Id:     lora.Id,
		Status: string(lora.Status),
		Cost:   cost,
	}, nil
}

func (s *loraService) List(ctx context.Context, userId uuid.UUID) ([]*dto.LoraModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	loras, err := uow.LoraRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LoraModelResponse, 0, len(loras))
	for _, l := range loras {
		res = append(res, &dto.LoraModelResponse{
			Id:          l.Id,
			Name:        l.Name,
			TriggerWord: l.TriggerWord,
			Status:      string(l.Status),
			ModelURL:    l.ModelURL,
			CreatedAt:   l.CreatedAt,
		})
	}
	return res, nil
}
