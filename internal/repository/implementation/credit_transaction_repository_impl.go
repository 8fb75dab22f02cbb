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

type CreditTransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CreditTransactionMapper
}

func NewCreditTransactionRepository(db *gorm.DB) contract.CreditTransactionRepository {
	return &CreditTransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewCreditTransactionMapper(),
	}
}

func (r *CreditTransactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CreditTransactionRepositoryImpl) Create(ctx context.Context, transaction *entity.CreditTransaction) error {
	m := r.mapper.ToModel(transaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*transaction = *r.mapper.ToEntity(m)
	return nil
}

func (r *CreditTransactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CreditTransaction, error) {
	var m model.CreditTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CreditTransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var models []*model.CreditTransaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CreditTransaction, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CreditTransactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CreditTransaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
