package implementation

import (
	"context"
	"errors"
	"fmt"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/mapper"
	"pepper-ai-be/internal/model"
	"pepper-ai-be/internal/repository/contract"
	"pepper-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	m := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DebitCredits guards the decrement with the balance in the WHERE clause so
// check and decrement are one statement. Concurrent spends against the same
// user serialize on the row; the loser sees RowsAffected == 0.
func (r *UserRepositoryImpl) DebitCredits(ctx context.Context, userId uuid.UUID, amount float64) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("debit amount must be non-negative, got %v", amount)
	}
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND credits >= ?", userId, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *UserRepositoryImpl) CreditCredits(ctx context.Context, userId uuid.UUID, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount must be non-negative, got %v", amount)
	}
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userId).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
