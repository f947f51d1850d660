package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/router"
	"github.com/fitchallenge/backend/pkg/session"
	"github.com/fitchallenge/backend/pkg/xcontext"
)

const (
	sessionShopKey     = "shop"
	sessionCustomerKey = "customer_id"

	// maxProxySignatureAge bounds how long a signed proxy url is accepted.
	maxProxySignatureAge = 5 * time.Minute
)

// ShopperVerifier resolves the storefront shopper. Requests coming through
// the app proxy are signed by the platform, the verified identity is then
// kept in the cookie session for the direct requests of the same browser.
type ShopperVerifier struct {
	endpoint shopify.IEndpoint
}

func NewShopperVerifier(endpoint shopify.IEndpoint) *ShopperVerifier {
	return &ShopperVerifier{endpoint: endpoint}
}

func (v *ShopperVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req := xcontext.HTTPRequest(ctx)
		store := xcontext.SessionStore(ctx)

		sess, err := store.Get(req)
		if err != nil {
			// A cookie signed by an old secret, start a new session.
			xcontext.Logger(ctx).Debugf("Cannot decode session: %v", err)
		}

		shopper := xcontext.Shopper{}
		query := req.URL.Query()
		if query.Has("signature") {
			if !v.endpoint.VerifyProxySignature(query) {
				return nil, errorx.New(errorx.PermissionDenied, "Invalid signature")
			}

			signedAt, err := strconv.ParseInt(query.Get("timestamp"), 10, 64)
			if err != nil {
				return nil, errorx.New(errorx.PermissionDenied, "Invalid signature")
			}

			age := time.Since(time.Unix(signedAt, 0))
			if age > maxProxySignatureAge || age < -maxProxySignatureAge {
				return nil, errorx.New(errorx.PermissionDenied, "Expired signature")
			}

			shopper.Shop = common.NormalizeShopDomain(query.Get("shop"))
			shopper.CustomerID = query.Get("logged_in_customer_id")

			sess.Values[sessionShopKey] = shopper.Shop
			sess.Values[sessionCustomerKey] = shopper.CustomerID
			if err := store.Save(req, xcontext.HTTPWriter(ctx), sess); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot save session: %v", err)
				return nil, errorx.Unknown
			}
		} else {
			shopper.Shop = session.GetString(sess, sessionShopKey)
			shopper.CustomerID = session.GetString(sess, sessionCustomerKey)
		}

		if shopper.Shop == "" {
			shopper.Shop = xcontext.Configs(ctx).Shopify.DefaultShop
		}

		if shopper.Shop == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Unknown shop")
		}

		return xcontext.WithRequestShopper(ctx, shopper), nil
	}
}
