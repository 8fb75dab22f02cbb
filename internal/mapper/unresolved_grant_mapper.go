package mapper

import (
	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/model"
)

type UnresolvedGrantMapper struct{}

func NewUnresolvedGrantMapper() *UnresolvedGrantMapper {
	return &UnresolvedGrantMapper{}
}

func (m *UnresolvedGrantMapper) ToEntity(g *model.UnresolvedGrant) *entity.UnresolvedGrant {
	if g == nil {
		return nil
	}
	return &entity.UnresolvedGrant{
		Id:              g.Id,
		StripeEventId:   g.StripeEventId,
		StripePaymentId: g.StripePaymentId,
		SubjectUserId:   g.SubjectUserId,
		CustomerEmail:   g.CustomerEmail,
		Credits:         g.Credits,
		Amount:          g.Amount,
		Resolved:        g.Resolved,
		CreatedAt:       g.CreatedAt,
	}
}

func (m *UnresolvedGrantMapper) ToModel(g *entity.UnresolvedGrant) *model.UnresolvedGrant {
	if g == nil {
		return nil
	}
	return &model.UnresolvedGrant{
		Id:              g.Id,
		StripeEventId:   g.StripeEventId,
		StripePaymentId: g.StripePaymentId,
		SubjectUserId:   g.SubjectUserId,
		CustomerEmail:   g.CustomerEmail,
		Credits:         g.Credits,
		Amount:          g.Amount,
		Resolved:        g.Resolved,
		CreatedAt:       g.CreatedAt,
	}
}
