package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/fitchallenge/backend/mocks"
	"github.com/fitchallenge/backend/pkg/authenticator"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/session"
	"github.com/fitchallenge/backend/pkg/testutil"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeSessionTokenVerifier struct {
	tokens map[string]string
}

func (v *fakeSessionTokenVerifier) Verify(token string) (authenticator.SessionClaims, error) {
	shop, ok := v.tokens[token]
	if !ok {
		return authenticator.SessionClaims{}, errors.New("invalid token")
	}
	return authenticator.SessionClaims{Dest: "https://" + shop}, nil
}

func requestContext(ctx context.Context, req *http.Request) (context.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithSessionStore(ctx, session.NewCookieStore("challenge_session", nil, []byte("session-secret")))
	return ctx, w
}

func TestAdminVerifier(t *testing.T) {
	verifier := NewAdminVerifier(&fakeSessionTokenVerifier{tokens: map[string]string{"good": testutil.Shop}})

	tests := []struct {
		name          string
		authorization string
		wantShop      string
		wantErr       error
	}{
		{
			name:          "valid token",
			authorization: "Bearer good",
			wantShop:      testutil.Shop,
		},
		{
			name:    "missing header",
			wantErr: errorx.New(errorx.Unauthenticated, "You need to authenticate before"),
		},
		{
			name:          "not a bearer token",
			authorization: "Basic good",
			wantErr:       errorx.New(errorx.Unauthenticated, "You need to authenticate before"),
		},
		{
			name:          "invalid token",
			authorization: "Bearer bad",
			wantErr:       errorx.New(errorx.Unauthenticated, "Invalid session token"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/getListChallenge", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			ctx, _ := requestContext(context.Background(), req)
			ctx, err := verifier.Middleware()(ctx)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantShop, xcontext.Shop(ctx))
		})
	}
}

func TestShopperVerifier_ProxyThenCookie(t *testing.T) {
	endpoint := &mocks.ShopifyEndpoint{}
	endpoint.On("VerifyProxySignature", mock.Anything).Return(true).Once()
	verifier := NewShopperVerifier(endpoint)

	req := httptest.NewRequest(http.MethodGet,
		"/apps/challenge/getStatus?shop=FIXTURE.myshopify.com&logged_in_customer_id=42&signature=abc"+
			"&timestamp="+unixTimestamp(time.Now()), nil)
	ctx, w := requestContext(testutil.MockContext(), req)

	ctx, err := verifier.Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, xcontext.Shopper{Shop: testutil.Shop, CustomerID: "42"}, xcontext.RequestShopper(ctx))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	// The next direct request of the same browser carries only the cookie.
	next := httptest.NewRequest(http.MethodPost, "/storefront/submitStart", nil)
	next.AddCookie(cookies[0])
	ctx, _ = requestContext(testutil.MockContext(), next)

	ctx, err = verifier.Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, xcontext.Shopper{Shop: testutil.Shop, CustomerID: "42"}, xcontext.RequestShopper(ctx))

	endpoint.AssertExpectations(t)
}

func TestShopperVerifier_InvalidSignature(t *testing.T) {
	endpoint := &mocks.ShopifyEndpoint{}
	endpoint.On("VerifyProxySignature", mock.Anything).Return(false)

	req := httptest.NewRequest(http.MethodGet, "/apps/challenge/getStatus?shop=a.myshopify.com&signature=forged", nil)
	ctx, _ := requestContext(testutil.MockContext(), req)

	_, err := NewShopperVerifier(endpoint).Middleware()(ctx)
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Invalid signature"), err)
}

func TestShopperVerifier_ExpiredSignature(t *testing.T) {
	endpoint := &mocks.ShopifyEndpoint{}
	endpoint.On("VerifyProxySignature", mock.Anything).Return(true)
	verifier := NewShopperVerifier(endpoint)

	testCases := []struct {
		name    string
		query   string
		wantErr error
	}{
		{
			name:    "replayed",
			query:   "&timestamp=" + unixTimestamp(time.Now().Add(-time.Hour)),
			wantErr: errorx.New(errorx.PermissionDenied, "Expired signature"),
		},
		{
			name:    "from the future",
			query:   "&timestamp=" + unixTimestamp(time.Now().Add(time.Hour)),
			wantErr: errorx.New(errorx.PermissionDenied, "Expired signature"),
		},
		{
			name:    "missing",
			query:   "",
			wantErr: errorx.New(errorx.PermissionDenied, "Invalid signature"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet,
				"/apps/challenge/getStatus?shop=a.myshopify.com&logged_in_customer_id=42&signature=abc"+tc.query, nil)
			ctx, w := requestContext(testutil.MockContext(), req)

			_, err := verifier.Middleware()(ctx)
			require.Equal(t, tc.wantErr, err)
			require.Empty(t, w.Result().Cookies())
		})
	}
}

func unixTimestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

func TestShopperVerifier_DefaultShop(t *testing.T) {
	verifier := NewShopperVerifier(&mocks.ShopifyEndpoint{})
	req := httptest.NewRequest(http.MethodGet, "/storefront/getCustomization", nil)

	// No default shop is configured.
	ctx, _ := requestContext(testutil.MockContext(), req)
	_, err := verifier.Middleware()(ctx)
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Unknown shop"), err)

	cfg := testutil.MockConfigs()
	cfg.Shopify.DefaultShop = "default.myshopify.com"
	ctx, _ = requestContext(testutil.MockContextWithConfigs(cfg), req)

	ctx, err = verifier.Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, xcontext.Shopper{Shop: "default.myshopify.com"}, xcontext.RequestShopper(ctx))
}
