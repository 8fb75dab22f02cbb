package implementation

import (
	"context"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/mapper"
	"pepper-ai-be/internal/model"
	"pepper-ai-be/internal/repository/contract"
	"pepper-ai-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UnresolvedGrantRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UnresolvedGrantMapper
}

func NewUnresolvedGrantRepository(db *gorm.DB) contract.UnresolvedGrantRepository {
	return &UnresolvedGrantRepositoryImpl{
		db:     db,
		mapper: mapper.NewUnresolvedGrantMapper(),
	}
}

func (r *UnresolvedGrantRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UnresolvedGrantRepositoryImpl) Create(ctx context.Context, grant *entity.UnresolvedGrant) error {
	m := r.mapper.ToModel(grant)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*grant = *r.mapper.ToEntity(m)
	return nil
}

func (r *UnresolvedGrantRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnresolvedGrant, error) {
	var models []*model.UnresolvedGrant
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UnresolvedGrant, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}
