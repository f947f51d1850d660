package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/fitchallenge/backend/pkg/xredis"
)

// cachedEndpoint keeps customer lookups in redis. A cache failure never fails
// the lookup.
type cachedEndpoint struct {
	IEndpoint

	redisClient xredis.Client
	ttl         time.Duration
}

func NewCachedEndpoint(endpoint IEndpoint, redisClient xredis.Client, ttl time.Duration) *cachedEndpoint {
	return &cachedEndpoint{
		IEndpoint:   endpoint,
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func customerKey(shop, email string) string {
	return fmt.Sprintf("customer:%s:%s", shop, strings.ToLower(email))
}

func (e *cachedEndpoint) FindCustomerByEmail(
	ctx context.Context, shop, accessToken, email string,
) (Customer, error) {
	key := customerKey(shop, email)

	var customer Customer
	err := e.redisClient.GetObj(ctx, key, &customer)
	if err == nil {
		return customer, nil
	}

	if !errors.Is(err, xredis.ErrNotFound) {
		xcontext.Logger(ctx).Warnf("Cannot get customer from cache: %v", err)
	}

	customer, err = e.IEndpoint.FindCustomerByEmail(ctx, shop, accessToken, email)
	if err != nil {
		return Customer{}, err
	}

	if err := e.redisClient.SetObj(ctx, key, customer, e.ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot set customer to cache: %v", err)
	}

	return customer, nil
}
