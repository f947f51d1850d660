package repository

import (
	"context"

	"github.com/fitchallenge/backend/pkg/xcontext"
)

// ShopCount is the number of rows of a table which belong to a shop.
type ShopCount struct {
	Shop  string
	Count int64
}

func countByShop(ctx context.Context, model any) ([]ShopCount, error) {
	var result []ShopCount
	err := xcontext.DB(ctx).Model(model).
		Select("shop, COUNT(*) AS count").
		Group("shop").
		Order("shop").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func reassignShop(ctx context.Context, model any, from, to string) (int64, error) {
	tx := xcontext.DB(ctx).Model(model).Where("shop=?", from).Update("shop", to)
	return tx.RowsAffected, tx.Error
}
