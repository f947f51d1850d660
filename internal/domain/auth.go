package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/fitchallenge/backend/pkg/authenticator"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
)

const (
	oauthStateExpiration = 10 * time.Minute
	callbackPath         = "/auth/callback"
)

type AuthDomain interface {
	Install(context.Context, *model.InstallRequest) (*model.InstallResponse, error)
	Callback(context.Context, *model.CallbackRequest) (*model.CallbackResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
}

type authDomain struct {
	shopSessionRepo repository.ShopSessionRepository
	shopifyEndpoint shopify.IEndpoint

	// stateEngine signs the shop into the oauth state, so the callback can
	// only complete an install which was started here.
	stateEngine authenticator.TokenEngine[string]
}

func NewAuthDomain(
	shopSessionRepo repository.ShopSessionRepository,
	shopifyEndpoint shopify.IEndpoint,
	stateEngine authenticator.TokenEngine[string],
) *authDomain {
	return &authDomain{
		shopSessionRepo: shopSessionRepo,
		shopifyEndpoint: shopifyEndpoint,
		stateEngine:     stateEngine,
	}
}

func NewOAuthStateEngine(secret string) authenticator.TokenEngine[string] {
	return authenticator.NewTokenEngine[string](secret, oauthStateExpiration)
}

func (d *authDomain) Install(
	ctx context.Context, req *model.InstallRequest,
) (*model.InstallResponse, error) {
	shop := common.NormalizeShopDomain(req.Shop)
	if !common.IsValidShopDomain(shop) {
		return nil, errorx.NewField("shop", "Invalid shop domain")
	}

	state, err := d.stateEngine.Generate(uuid.NewString(), shop)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate oauth state: %v", err)
		return nil, errorx.Unknown
	}

	appURL := strings.TrimSuffix(xcontext.Configs(ctx).Shopify.AppURL, "/")
	return &model.InstallResponse{
		URL: d.shopifyEndpoint.AuthorizeURL(shop, state, appURL+callbackPath),
	}, nil
}

func (d *authDomain) Callback(
	ctx context.Context, req *model.CallbackRequest,
) (*model.CallbackResponse, error) {
	shop := common.NormalizeShopDomain(req.Shop)
	if !common.IsValidShopDomain(shop) {
		return nil, errorx.NewField("shop", "Invalid shop domain")
	}

	if req.Code == "" {
		return nil, errorx.NewField("code", "Authorization code is required")
	}

	httpReq := xcontext.HTTPRequest(ctx)
	if httpReq == nil || !d.shopifyEndpoint.VerifyCallback(httpReq.URL.Query()) {
		return nil, errorx.New(errorx.PermissionDenied, "Invalid hmac")
	}

	stateShop, err := d.stateEngine.Verify(req.State)
	if err != nil || stateShop != shop {
		xcontext.Logger(ctx).Debugf("Invalid oauth state: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Invalid state")
	}

	token, err := d.shopifyEndpoint.ExchangeAccessToken(ctx, shop, req.Code)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot exchange access token of %s: %v", shop, err)
		return nil, errorx.New(errorx.BadResponse, "Cannot install the app, please try again")
	}

	err = d.shopSessionRepo.Upsert(ctx, &entity.ShopSession{
		Base:        entity.Base{ID: uuid.NewString()},
		Shop:        shop,
		AccessToken: token.AccessToken,
		Scope:       token.Scope,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save shop session: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.Logger(ctx).Infof("Shop %s installed the app", shop)

	apiKey := xcontext.Configs(ctx).Shopify.APIKey
	return &model.CallbackResponse{URL: fmt.Sprintf("https://%s/admin/apps/%s", shop, apiKey)}, nil
}

func (d *authDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	shopper := xcontext.RequestShopper(ctx)
	return &model.GetMeResponse{
		Shop:       xcontext.Shop(ctx),
		CustomerID: shopper.CustomerID,
		Email:      shopper.Email,
	}, nil
}
