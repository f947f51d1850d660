package shopify

import (
	"context"
	"net/url"
)

type IEndpoint interface {
	// AuthorizeURL returns the url the merchant is redirected to when
	// installing the app.
	AuthorizeURL(shop, state, redirectURI string) string

	// ExchangeAccessToken trades the authorization code for an offline access
	// token of the shop.
	ExchangeAccessToken(ctx context.Context, shop, code string) (AccessToken, error)

	// FindCustomerByEmail returns ErrCustomerNotFound if the shop has no
	// customer with the email.
	FindCustomerByEmail(ctx context.Context, shop, accessToken, email string) (Customer, error)

	// VerifyCallback checks the hmac parameter of an OAuth redirect.
	VerifyCallback(query url.Values) bool

	// VerifyProxySignature checks the signature parameter which the app proxy
	// appends to storefront requests.
	VerifyProxySignature(query url.Values) bool
}
