package migration

import (
	"context"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// migrate0001 lowercases the shop domains, some rows were stored with the
// domain exactly as typed by the merchant.
func migrate0001(ctx context.Context) error {
	db := xcontext.DB(ctx)
	for _, model := range []any{
		&entity.Challenge{},
		&entity.Participant{},
		&entity.CustomizationSettings{},
		&entity.ShopSession{},
	} {
		err := db.Model(model).
			Where("shop <> LOWER(shop)").
			Update("shop", gorm.Expr("LOWER(shop)")).Error
		if err != nil {
			return err
		}
	}

	return nil
}
