package shopify

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/fitchallenge/backend/config"
	"github.com/fitchallenge/backend/pkg/api"
	"github.com/fitchallenge/backend/pkg/crypto"
	"github.com/mitchellh/mapstructure"
)

type Endpoint struct {
	APIKey     string
	APISecret  string
	APIVersion string
	Scopes     string

	newGenerator func(shop string) api.Generator
}

func New(cfg config.ShopifyConfigs) *Endpoint {
	return &Endpoint{
		APIKey:     cfg.APIKey,
		APISecret:  cfg.APISecret,
		APIVersion: cfg.APIVersion,
		Scopes:     cfg.Scopes,
		newGenerator: func(shop string) api.Generator {
			return api.NewGenerator("https://" + shop)
		},
	}
}

func (e *Endpoint) AuthorizeURL(shop, state, redirectURI string) string {
	query := url.Values{}
	query.Set("client_id", e.APIKey)
	query.Set("scope", e.Scopes)
	query.Set("redirect_uri", redirectURI)
	query.Set("state", state)

	return fmt.Sprintf("https://%s/admin/oauth/authorize?%s", shop, query.Encode())
}

func (e *Endpoint) ExchangeAccessToken(ctx context.Context, shop, code string) (AccessToken, error) {
	resp, err := e.newGenerator(shop).New("/admin/oauth/access_token").
		Body(api.JSON{
			"client_id":     e.APIKey,
			"client_secret": e.APISecret,
			"code":          code,
		}).
		POST(ctx)
	if err != nil {
		return AccessToken{}, err
	}

	if !resp.IsSuccess() {
		return AccessToken{}, fmt.Errorf("cannot exchange access token: %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return AccessToken{}, errors.New("invalid response")
	}

	var token AccessToken
	if err := mapstructure.Decode(body, &token); err != nil {
		return AccessToken{}, err
	}

	if token.AccessToken == "" {
		return AccessToken{}, errors.New("empty access token")
	}

	return token, nil
}

func (e *Endpoint) FindCustomerByEmail(
	ctx context.Context, shop, accessToken, email string,
) (Customer, error) {
	resp, err := e.newGenerator(shop).New("/admin/api/%s/customers/search.json", e.APIVersion).
		Query(api.Parameter{
			"query":  "email:" + email,
			"fields": "id,email,first_name,last_name,orders_count,total_spent",
		}).
		GET(ctx, api.WithHeader("X-Shopify-Access-Token", accessToken))
	if err != nil {
		return Customer{}, err
	}

	if !resp.IsSuccess() {
		return Customer{}, fmt.Errorf("cannot search customers: %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Customer{}, errors.New("invalid response")
	}

	customers, err := body.GetArray("customers")
	if err != nil {
		return Customer{}, err
	}

	for _, c := range customers {
		var customer Customer
		if err := decode(c, &customer); err != nil {
			return Customer{}, err
		}

		// The search is fuzzy, only an exact match is accepted.
		if strings.EqualFold(customer.Email, email) {
			return customer, nil
		}
	}

	return Customer{}, ErrCustomerNotFound
}

func (e *Endpoint) VerifyCallback(query url.Values) bool {
	signature := query.Get("hmac")
	if signature == "" {
		return false
	}

	var pairs []string
	for key, values := range query {
		if key == "hmac" || key == "signature" {
			continue
		}
		pairs = append(pairs, key+"="+strings.Join(values, ","))
	}
	sort.Strings(pairs)

	expected := crypto.HMAC(sha256.New, []byte(strings.Join(pairs, "&")), []byte(e.APISecret))
	return crypto.EqualHex(expected, signature)
}

func (e *Endpoint) VerifyProxySignature(query url.Values) bool {
	signature := query.Get("signature")
	if signature == "" {
		return false
	}

	var pairs []string
	for key, values := range query {
		if key == "signature" {
			continue
		}
		pairs = append(pairs, key+"="+strings.Join(values, ","))
	}
	sort.Strings(pairs)

	expected := crypto.HMAC(sha256.New, []byte(strings.Join(pairs, "")), []byte(e.APISecret))
	return crypto.EqualHex(expected, signature)
}

func decode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
