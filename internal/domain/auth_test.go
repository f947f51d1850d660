package domain

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/mocks"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/testutil"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_Install(t *testing.T) {
	ctx := testutil.MockContext()
	endpoint := &mocks.ShopifyEndpoint{}
	endpoint.On("AuthorizeURL", testutil.Shop, mock.Anything, "https://app.example.com/auth/callback").
		Return("https://fixture.myshopify.com/admin/oauth/authorize").Once()

	d := NewAuthDomain(repository.NewShopSessionRepository(), endpoint, NewOAuthStateEngine(testutil.APISecret))

	resp, err := d.Install(ctx, &model.InstallRequest{Shop: "https://FIXTURE.myshopify.com/"})
	require.NoError(t, err)
	require.Equal(t, "https://fixture.myshopify.com/admin/oauth/authorize", resp.RedirectURL())

	state := endpoint.Calls[0].Arguments.String(1)
	shop, err := d.stateEngine.Verify(state)
	require.NoError(t, err)
	require.Equal(t, testutil.Shop, shop)

	_, err = d.Install(ctx, &model.InstallRequest{Shop: "evil.example.com"})
	require.Equal(t, errorx.NewField("shop", "Invalid shop domain"), err)

	endpoint.AssertExpectations(t)
}

func Test_authDomain_Callback(t *testing.T) {
	stateEngine := NewOAuthStateEngine(testutil.APISecret)
	validState, err := stateEngine.Generate("nonce", testutil.Shop)
	require.NoError(t, err)
	otherState, err := stateEngine.Generate("nonce", "other.myshopify.com")
	require.NoError(t, err)

	tests := []struct {
		name      string
		state     string
		validHmac bool
		wantErr   error
	}{
		{
			name:      "happy case",
			state:     validState,
			validHmac: true,
		},
		{
			name:      "invalid hmac",
			state:     validState,
			validHmac: false,
			wantErr:   errorx.New(errorx.PermissionDenied, "Invalid hmac"),
		},
		{
			name:      "state of another shop",
			state:     otherState,
			validHmac: true,
			wantErr:   errorx.New(errorx.PermissionDenied, "Invalid state"),
		},
		{
			name:      "forged state",
			state:     "forged",
			validHmac: true,
			wantErr:   errorx.New(errorx.PermissionDenied, "Invalid state"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			query.Set("shop", testutil.Shop)
			query.Set("code", "auth-code")
			query.Set("state", tt.state)
			query.Set("hmac", "hmac")

			ctx := testutil.MockContext()
			ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest("GET", "/auth/callback?"+query.Encode(), nil))

			endpoint := &mocks.ShopifyEndpoint{}
			endpoint.On("VerifyCallback", query).Return(tt.validHmac)
			endpoint.On("ExchangeAccessToken", mock.Anything, testutil.Shop, "auth-code").
				Return(shopify.AccessToken{AccessToken: "shpat_token", Scope: "read_customers"}, nil)

			d := NewAuthDomain(repository.NewShopSessionRepository(), endpoint, stateEngine)
			resp, err := d.Callback(ctx, &model.CallbackRequest{
				Code:  "auth-code",
				Shop:  testutil.Shop,
				State: tt.state,
				Hmac:  "hmac",
			})
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "https://fixture.myshopify.com/admin/apps/api-key", resp.RedirectURL())

			session, err := repository.NewShopSessionRepository().Get(ctx, testutil.Shop)
			require.NoError(t, err)
			require.Equal(t, "shpat_token", session.AccessToken)
			require.Equal(t, "read_customers", session.Scope)
		})
	}
}

func Test_authDomain_GetMe(t *testing.T) {
	d := NewAuthDomain(repository.NewShopSessionRepository(), &mocks.ShopifyEndpoint{}, NewOAuthStateEngine("secret"))

	ctx := testutil.WithShopper(testutil.MockContext(), testutil.CustomerID, "jane@example.com")
	resp, err := d.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, &model.GetMeResponse{
		Shop:       testutil.Shop,
		CustomerID: testutil.CustomerID,
		Email:      "jane@example.com",
	}, resp)
}
