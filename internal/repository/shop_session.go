package repository

import (
	"context"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ShopSessionRepository interface {
	Upsert(ctx context.Context, e *entity.ShopSession) error
	Get(ctx context.Context, shop string) (*entity.ShopSession, error)
	GetList(ctx context.Context) ([]entity.ShopSession, error)
}

type shopSessionRepository struct{}

func NewShopSessionRepository() *shopSessionRepository {
	return &shopSessionRepository{}
}

func (r *shopSessionRepository) Upsert(ctx context.Context, e *entity.ShopSession) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shop"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at", "access_token", "scope"}),
		}).
		Create(e).Error
}

func (r *shopSessionRepository) Get(ctx context.Context, shop string) (*entity.ShopSession, error) {
	var result entity.ShopSession
	if err := xcontext.DB(ctx).Take(&result, "shop=?", shop).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *shopSessionRepository) GetList(ctx context.Context) ([]entity.ShopSession, error) {
	var result []entity.ShopSession
	if err := xcontext.DB(ctx).Order("shop").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}
