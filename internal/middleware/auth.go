package middleware

import (
	"context"
	"strings"

	"github.com/fitchallenge/backend/pkg/authenticator"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/router"
	"github.com/fitchallenge/backend/pkg/xcontext"
)

// AdminVerifier authenticates the embedded admin by the session token in the
// Authorization header. The shop of the token becomes the shop of the request.
type AdminVerifier struct {
	verifier authenticator.SessionTokenVerifier
}

func NewAdminVerifier(verifier authenticator.SessionTokenVerifier) *AdminVerifier {
	return &AdminVerifier{verifier: verifier}
}

func (a *AdminVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
		token, ok := strings.CutPrefix(authorization, "Bearer ")
		if !ok || token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		claims, err := a.verifier.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid session token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid session token")
		}

		return xcontext.WithShop(ctx, claims.Shop()), nil
	}
}
