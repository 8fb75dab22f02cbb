package implementation

import (
	"context"
	"errors"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/mapper"
	"pepper-ai-be/internal/model"
	"pepper-ai-be/internal/repository/contract"
	"pepper-ai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LoraRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LoraMapper
}

func NewLoraRepository(db *gorm.DB) contract.LoraRepository {
	return &LoraRepositoryImpl{
		db:     db,
		mapper: mapper.NewLoraMapper(),
	}
}

func (r *LoraRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LoraRepositoryImpl) Create(ctx context.Context, lora *entity.LoraModel) error {
	m := r.mapper.ToModel(lora)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*lora = *r.mapper.ToEntity(m)
	return nil
}

func (r *LoraRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LoraModel, error) {
	var m model.LoraModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LoraRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoraModel, error) {
	var models []*model.LoraModel
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.LoraModel, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *LoraRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.LoraModel{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
