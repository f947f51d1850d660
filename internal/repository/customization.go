package repository

import (
	"context"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CustomizationRepository interface {
	Get(ctx context.Context, shop string) (*entity.CustomizationSettings, error)
	Upsert(ctx context.Context, e *entity.CustomizationSettings) error
	DeleteByShop(ctx context.Context, shop string) error
	CountByShop(ctx context.Context) ([]ShopCount, error)
	ReassignShop(ctx context.Context, from, to string) (int64, error)
}

type customizationRepository struct{}

func NewCustomizationRepository() *customizationRepository {
	return &customizationRepository{}
}

func (r *customizationRepository) Get(ctx context.Context, shop string) (*entity.CustomizationSettings, error) {
	var result entity.CustomizationSettings
	if err := xcontext.DB(ctx).Take(&result, "shop=?", shop).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *customizationRepository) Upsert(ctx context.Context, e *entity.CustomizationSettings) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shop"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"updated_at",
				"title",
				"description",
				"start_button_label",
				"end_button_label",
				"email_label",
				"weight_label",
				"front_photo_label",
				"side_photo_label",
				"back_photo_label",
				"submit_label",
				"success_message",
				"primary_color",
				"secondary_color",
				"background_color",
				"text_color",
				"button_text_color",
			}),
		}).
		Create(e).Error
}

func (r *customizationRepository) DeleteByShop(ctx context.Context, shop string) error {
	return xcontext.DB(ctx).Delete(&entity.CustomizationSettings{}, "shop=?", shop).Error
}

func (r *customizationRepository) CountByShop(ctx context.Context) ([]ShopCount, error) {
	return countByShop(ctx, &entity.CustomizationSettings{})
}

func (r *customizationRepository) ReassignShop(ctx context.Context, from, to string) (int64, error) {
	return reassignShop(ctx, &entity.CustomizationSettings{}, from, to)
}
