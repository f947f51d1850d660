package migration_test

import (
	"testing"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/migration"
	"github.com/fitchallenge/backend/pkg/testutil"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	ctx := testutil.MockContext()
	require.NoError(t, migration.Migrate(ctx))

	var versions []string
	require.NoError(t, xcontext.DB(ctx).Model(&entity.Migration{}).Order("version").Pluck("version", &versions).Error)
	require.Equal(t, migration.Versions(), versions)

	// Applying again is a no-op.
	require.NoError(t, migration.Migrate(ctx))
}

func TestMigrate0001(t *testing.T) {
	ctx := testutil.MockContext()
	require.NoError(t, migration.AutoMigrate(ctx))
	require.NoError(t, xcontext.DB(ctx).Create(&entity.Challenge{Base: entity.Base{ID: "c1"}, Shop: "ABC.myshopify.com"}).Error)

	require.NoError(t, migration.Run(ctx, "0001"))

	var challenge entity.Challenge
	require.NoError(t, xcontext.DB(ctx).Take(&challenge, "id = ?", "c1").Error)
	require.Equal(t, "abc.myshopify.com", challenge.Shop)
}
