package mocks

import (
	"context"
	"net/url"

	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/stretchr/testify/mock"
)

type ShopifyEndpoint struct {
	mock.Mock
}

func (e *ShopifyEndpoint) AuthorizeURL(arg1, arg2, arg3 string) string {
	args := e.Called(arg1, arg2, arg3)
	return args.String(0)
}

func (e *ShopifyEndpoint) ExchangeAccessToken(arg1 context.Context, arg2, arg3 string) (shopify.AccessToken, error) {
	args := e.Called(arg1, arg2, arg3)

	if args.Get(0) == nil {
		return shopify.AccessToken{}, args.Error(1)
	}
	return args.Get(0).(shopify.AccessToken), args.Error(1)
}

func (e *ShopifyEndpoint) FindCustomerByEmail(arg1 context.Context, arg2, arg3, arg4 string) (shopify.Customer, error) {
	args := e.Called(arg1, arg2, arg3, arg4)

	if args.Get(0) == nil {
		return shopify.Customer{}, args.Error(1)
	}
	return args.Get(0).(shopify.Customer), args.Error(1)
}

func (e *ShopifyEndpoint) VerifyCallback(arg1 url.Values) bool {
	args := e.Called(arg1)
	return args.Bool(0)
}

func (e *ShopifyEndpoint) VerifyProxySignature(arg1 url.Values) bool {
	args := e.Called(arg1)
	return args.Bool(0)
}
