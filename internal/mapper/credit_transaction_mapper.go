package mapper

import (
	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/model"
)

type CreditTransactionMapper struct{}

func NewCreditTransactionMapper() *CreditTransactionMapper {
	return &CreditTransactionMapper{}
}

func (m *CreditTransactionMapper) ToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		Amount:          t.Amount,
		Credits:         t.Credits,
		StripePaymentId: t.StripePaymentId,
		PackageId:       t.PackageId,
		Status:          entity.TransactionStatus(t.Status),
		CreatedAt:       t.CreatedAt,
	}
}

func (m *CreditTransactionMapper) ToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:              t.Id,
		UserId:          t.UserId,
		Amount:          t.Amount,
		Credits:         t.Credits,
		StripePaymentId: t.StripePaymentId,
		PackageId:       t.PackageId,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
	}
}
