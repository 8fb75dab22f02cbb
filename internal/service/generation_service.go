package service

import (
	"context"
	"strconv"
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

type IGenerationService interface {
	TextToImage(ctx context.Context, userId uuid.UUID, req *dto.TextToImageRequest) (*dto.GenerationResponse, error)
	ImageToImage(ctx context.Context, userId uuid.UUID, req *dto.ImageToImageRequest) (*dto.GenerationResponse, error)
	ImageToVideo(ctx context.Context, userId uuid.UUID, req *dto.ImageToVideoRequest) (*dto.GenerationResponse, error)
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	provider       GenerationProvider
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	provider GenerationProvider,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		provider:       provider,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *generationService) TextToImage(ctx context.Context, userId uuid.UUID, req *dto.TextToImageRequest) (*dto.GenerationResponse, error) {
	numImages := req.NumImages
	if numImages < 1 {
		numImages = 1
	}
	tier := pricing.QualityTier(req.Quality)
	cost := pricing.TextToImageCost(tier, numImages)

	loraURL, err := s.resolveLoraURL(ctx, userId, req.LoraModelId)
	if err != nil {
		return nil, err
	}

	gen := &entity.Generation{
		Kind:      entity.GenerationKindTextToImage,
		Prompt:    req.Prompt,
		Quality:   strPtr(req.Quality),
		NumImages: &numImages,
		LoraURL:   loraURL,
	}

	return s.spend(ctx, userId, cost, gen, func(ctx context.Context) (string, error) {
		input := fal.TextToImageInput{
			Prompt:    req.Prompt,
			ImageSize: imageSizeForTier(tier),
			NumImages: numImages,
		}
		if loraURL != nil {
			input.Loras = []fal.LoraWeight{{Path: *loraURL, Scale: 1.0}}
		}
		return s.provider.TextToImage(ctx, input)
	})
}

func (s *generationService) ImageToImage(ctx context.Context, userId uuid.UUID, req *dto.ImageToImageRequest) (*dto.GenerationResponse, error) {
	cost := pricing.ImageToImageCost

	strength := 0.8
	if req.Strength != nil {
		strength = *req.Strength
	}

	loraURL, err := s.resolveLoraURL(ctx, userId, req.LoraModelId)
	if err != nil {
		return nil, err
	}

	gen := &entity.Generation{
		Kind:     entity.GenerationKindImageToImage,
		Prompt:   req.Prompt,
		Strength: &strength,
		LoraURL:  loraURL,
	}

	return s.spend(ctx, userId, cost, gen, func(ctx context.Context) (string, error) {
		input := fal.ImageToImageInput{
			ImageURL: req.ImageDataURL,
			Prompt:   req.Prompt,
			Strength: strength,
		}
		if loraURL != nil {
			input.Loras = []fal.LoraWeight{{Path: *loraURL, Scale: 1.0}}
		}
		return s.provider.ImageToImage(ctx, input)
	})
}

func (s *generationService) ImageToVideo(ctx context.Context, userId uuid.UUID, req *dto.ImageToVideoRequest) (*dto.GenerationResponse, error) {
	resolution := req.Resolution
	if resolution == "" {
		resolution = "1080p"
	}
	// The provider only renders 5 or 10 second clips; anything else becomes
	// 5. Normalize before pricing so the charge and the recorded duration
	// match what is actually fulfilled.
	duration := 5
	if req.Duration == 10 {
		duration = 10
	}
	cost := pricing.ImageToVideoCost(pricing.VideoResolution(resolution), duration)

	gen := &entity.Generation{
		Kind:            entity.GenerationKindImageToVideo,
		Prompt:          req.Prompt,
		Resolution:      &resolution,
		DurationSeconds: &duration,
	}

	return s.spend(ctx, userId, cost, gen, func(ctx context.Context) (string, error) {
		return s.provider.ImageToVideo(ctx, fal.ImageToVideoInput{
			ImageURL:   req.ImageDataURL,
			Prompt:     req.Prompt,
			Duration:   strconv.Itoa(duration),
			Resolution: resolution,
		})
	})
}

// spend runs the shared charge protocol: the cost is computed once by the
// caller, checked against the balance before the provider is called, and
// debited together with the generation record in a single transaction only
// after the provider succeeds. A provider failure never mutates the ledger.
func (s *generationService) spend(
	ctx context.Context,
	userId uuid.UUID,
	cost float64,
	gen *entity.Generation,
	call func(ctx context.Context) (string, error),
) (*dto.GenerationResponse, error) {
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

	resultURL, err := call(ctx)
	if err != nil {
		s.log.Error("generation", "provider call failed", map[string]interface{}{
			"user_id": userId,
			"kind":    gen.Kind,
			"cost":    cost,
			"error":   err.Error(),
		})
		return nil, &GenerationFailedError{Err: err}
	}

	gen.Id = uuid.New()
	gen.UserId = userId
	gen.ResultURL = resultURL
	gen.Cost = cost
	gen.Status = entity.GenerationStatusCompleted
	gen.CreatedAt = time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	debited, err := uow.UserRepository().DebitCredits(ctx, userId, cost)
	if err != nil {
		return nil, err
	}
	if !debited {
		// Balance dropped below cost between the pre-check and the debit.
		// The artifact is discarded rather than given away for free.
		balance := user.Credits
		if current, rerr := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}); rerr == nil && current != nil {
			balance = current.Credits
		}
		s.log.Warn("generation", "debit lost race after provider success", map[string]interface{}{
			"user_id": userId,
			"kind":    gen.Kind,
			"cost":    cost,
			"balance": balance,
		})
		return nil, &InsufficientCreditsError{Cost: cost, Balance: balance}
	}

	if err := uow.GenerationRepository().Create(ctx, gen); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "GENERATION_COMPLETED",
			Data: map[string]interface{}{
				"generation_id": gen.Id,
				"user_id":       userId,
				"kind":          gen.Kind,
				"cost":          cost,
				"result_url":    resultURL,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("generation", "failed to publish GENERATION_COMPLETED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return &dto.GenerationResponse{
		Id:        gen.Id,
		Kind:      string(gen.Kind),
		ResultURL: resultURL,
		Cost:      cost,
		CreatedAt: gen.CreatedAt,
	}, nil
}

// resolveLoraURL looks up a completed LoRA owned by the caller. A LoRA that
// is still training (or someone else's) is treated as not found.
func (s *generationService) resolveLoraURL(ctx context.Context, userId uuid.UUID, loraModelId *string) (*string, error) {
	if loraModelId == nil || *loraModelId == "" {
		return nil, nil
	}
	loraId, err := uuid.Parse(*loraModelId)
	if err != nil {
		return nil, ErrLoraNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	lora, err := uow.LoraRepository().FindOne(ctx,
		specification.ByID{ID: loraId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if lora == nil || lora.Status != entity.LoraStatusCompleted || lora.ModelURL == nil {
		return nil, ErrLoraNotFound
	}
	return lora.ModelURL, nil
}

func imageSizeForTier(tier pricing.QualityTier) string {
	switch tier {
	case pricing.Quality4K:
		return "2048x2048"
	case pricing.Quality8K:
		return "4096x4096"
	default:
		return "1024x1024"
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
