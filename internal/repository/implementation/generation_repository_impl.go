package implementation

import (
	"context"
	"errors"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/mapper"
	"pepper-ai-be/internal/model"
	"pepper-ai-be/internal/repository/contract"
	"pepper-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationMapper
}

func NewGenerationRepository(db *gorm.DB) contract.GenerationRepository {
	return &GenerationRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationMapper(),
	}
}

func (r *GenerationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationRepositoryImpl) Create(ctx context.Context, generation *entity.Generation) error {
	m := r.mapper.ToModel(generation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*generation = *r.mapper.ToEntity(m)
	return nil
}

func (r *GenerationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Generation{}, id).Error
}

func (r *GenerationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Generation, error) {
	var m model.Generation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GenerationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Generation, error) {
	var models []*model.Generation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Generation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *GenerationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Generation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
