package xcontext

import "context"

type (
	shopKey     struct{}
	shopperKey  struct{}
	responseKey struct{}
	errorKey    struct{}
)

// Shopper is the identity of a storefront customer resolved from a verified
// request.
type Shopper struct {
	Shop       string
	CustomerID string
	Email      string
}

func WithShop(ctx context.Context, shop string) context.Context {
	return context.WithValue(ctx, shopKey{}, shop)
}

// Shop returns the shop domain of the current request, either the admin's
// shop or the shopper's shop.
func Shop(ctx context.Context) string {
	if shop, ok := ctx.Value(shopKey{}).(string); ok {
		return shop
	}

	return RequestShopper(ctx).Shop
}

func WithRequestShopper(ctx context.Context, shopper Shopper) context.Context {
	return context.WithValue(ctx, shopperKey{}, shopper)
}

func RequestShopper(ctx context.Context) Shopper {
	shopper, _ := ctx.Value(shopperKey{}).(Shopper)
	return shopper
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func GetResponse(ctx context.Context) any {
	return ctx.Value(responseKey{})
}
