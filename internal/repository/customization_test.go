package repository

import (
	"testing"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_customizationRepository_Upsert(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewCustomizationRepository()

	settings := entity.DefaultCustomizationSettings(testutil.Shop)
	settings.ID = "s1"
	require.NoError(t, repo.Upsert(ctx, &settings))

	updated := entity.DefaultCustomizationSettings(testutil.Shop)
	updated.ID = "s2"
	updated.Title = "New year challenge"
	updated.PrimaryColor = "#000"
	require.NoError(t, repo.Upsert(ctx, &updated))

	got, err := repo.Get(ctx, testutil.Shop)
	require.NoError(t, err)
	require.Equal(t, "s1", got.ID)
	require.Equal(t, "New year challenge", got.Title)
	require.Equal(t, "#000", got.PrimaryColor)

	counts, err := repo.CountByShop(ctx)
	require.NoError(t, err)
	require.Equal(t, []ShopCount{{Shop: testutil.Shop, Count: 1}}, counts)
}

func Test_shopSessionRepository_Upsert(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewShopSessionRepository()

	require.NoError(t, repo.Upsert(ctx, &entity.ShopSession{
		Base: entity.Base{ID: "s1"}, Shop: testutil.Shop, AccessToken: "old", Scope: "read_customers",
	}))
	require.NoError(t, repo.Upsert(ctx, &entity.ShopSession{
		Base: entity.Base{ID: "s2"}, Shop: testutil.Shop, AccessToken: "new", Scope: "read_customers,read_orders",
	}))

	session, err := repo.Get(ctx, testutil.Shop)
	require.NoError(t, err)
	require.Equal(t, "new", session.AccessToken)

	sessions, err := repo.GetList(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}
