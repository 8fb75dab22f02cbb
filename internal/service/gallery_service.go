package service

import (
	"context"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/repository/specification"
	"pepper-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IGalleryService interface {
	List(ctx context.Context, userId uuid.UUID, req *dto.ListGenerationsRequest) (*dto.ListGenerationsResponse, error)
	Get(ctx context.Context, userId uuid.UUID, generationId uuid.UUID) (*dto.GalleryItemResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, generationId uuid.UUID) error
}

type galleryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGalleryService(uowFactory unitofwork.RepositoryFactory) IGalleryService {
	return &galleryService{uowFactory: uowFactory}
}

func (s *galleryService) List(ctx context.Context, userId uuid.UUID, req *dto.ListGenerationsRequest) (*dto.ListGenerationsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if req.Kind != "" {
		specs = append(specs, specification.Filter("kind", req.Kind))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.GenerationRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	generations, err := uow.GenerationRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.GalleryItemResponse, 0, len(generations))
	for _, g := range generations {
		items = append(items, dto.GalleryItemResponse{
			Id:        g.Id,
			Kind:      string(g.Kind),
			Prompt:    g.Prompt,
			ResultURL: g.ResultURL,
			Cost:      g.Cost,
			CreatedAt: g.CreatedAt,
		})
	}

	return &dto.ListGenerationsResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *galleryService) Get(ctx context.Context, userId uuid.UUID, generationId uuid.UUID) (*dto.GalleryItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gen, err := uow.GenerationRepository().FindOne(ctx,
		specification.ByID{ID: generationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, ErrGenerationNotFound
	}

	return &dto.GalleryItemResponse{
		Id:        gen.Id,
		Kind:      string(gen.Kind),
		Prompt:    gen.Prompt,
		ResultURL: gen.ResultURL,
		Cost:      gen.Cost,
		CreatedAt: gen.CreatedAt,
	}, nil
}

// Delete removes a gallery entry. Spent credits stay spent.
func (s *galleryService) Delete(ctx context.Context, userId uuid.UUID, generationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gen, err := uow.GenerationRepository().FindOne(ctx,
		specification.ByID{ID: generationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if gen == nil {
		return ErrGenerationNotFound
	}

	return uow.GenerationRepository().Delete(ctx, gen.Id)
}
