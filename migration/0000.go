package migration

import (
	"context"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
)

// migrate0000 will create the database with the latest version.
func migrate0000(ctx context.Context) error {
	return AutoMigrate(ctx)
}

// AutoMigrate creates or updates every table to the latest entities.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Challenge{},
		&entity.Participant{},
		&entity.Submission{},
		&entity.Photo{},
		&entity.CustomizationSettings{},
		&entity.ShopSession{},
		&entity.Migration{},
	)
}
