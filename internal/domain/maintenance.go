package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultBackfillConcurrency = 4

// MaintenanceDomain repairs data which was entered with a wrong shop domain
// and fills the order data of participants who joined before the app could
// read orders.
type MaintenanceDomain interface {
	DiagnoseShops(context.Context, *model.DiagnoseShopsRequest) (*model.DiagnoseShopsResponse, error)
	FixShopDomain(context.Context, *model.FixShopDomainRequest) (*model.FixShopDomainResponse, error)
	BackfillOrders(context.Context, *model.BackfillOrdersRequest) (*model.BackfillOrdersResponse, error)
}

type maintenanceDomain struct {
	challengeRepo     repository.ChallengeRepository
	participantRepo   repository.ParticipantRepository
	customizationRepo repository.CustomizationRepository
	shopSessionRepo   repository.ShopSessionRepository
	orderSyncer       *orderSyncer
}

func NewMaintenanceDomain(
	challengeRepo repository.ChallengeRepository,
	participantRepo repository.ParticipantRepository,
	customizationRepo repository.CustomizationRepository,
	shopSessionRepo repository.ShopSessionRepository,
	shopifyEndpoint shopify.IEndpoint,
) *maintenanceDomain {
	return &maintenanceDomain{
		challengeRepo:     challengeRepo,
		participantRepo:   participantRepo,
		customizationRepo: customizationRepo,
		shopSessionRepo:   shopSessionRepo,
		orderSyncer:       newOrderSyncer(participantRepo, shopSessionRepo, shopifyEndpoint),
	}
}

func (d *maintenanceDomain) DiagnoseShops(
	ctx context.Context, req *model.DiagnoseShopsRequest,
) (*model.DiagnoseShopsResponse, error) {
	diagnostics := map[string]*model.ShopDiagnostic{}
	get := func(shop string) *model.ShopDiagnostic {
		if diag, ok := diagnostics[shop]; ok {
			return diag
		}

		diag := &model.ShopDiagnostic{Shop: shop, Normalized: common.NormalizeShopDomain(shop)}
		diag.Valid = common.IsValidShopDomain(shop)
		diagnostics[shop] = diag
		return diag
	}

	challengeCounts, err := d.challengeRepo.CountByShop(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count challenges by shop: %v", err)
		return nil, errorx.Unknown
	}

	for _, c := range challengeCounts {
		get(c.Shop).Challenges = c.Count
	}

	participantCounts, err := d.participantRepo.CountByShop(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants by shop: %v", err)
		return nil, errorx.Unknown
	}

	for _, c := range participantCounts {
		get(c.Shop).Participants = c.Count
	}

	settingCounts, err := d.customizationRepo.CountByShop(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count settings by shop: %v", err)
		return nil, errorx.Unknown
	}

	for _, c := range settingCounts {
		get(c.Shop).HasSettings = c.Count > 0
	}

	sessions, err := d.shopSessionRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get shop sessions: %v", err)
		return nil, errorx.Unknown
	}

	for _, s := range sessions {
		get(s.Shop).Installed = true
	}

	shops := common.MapKeys(diagnostics)
	sort.Strings(shops)

	resp := &model.DiagnoseShopsResponse{Shops: []model.ShopDiagnostic{}}
	for _, shop := range shops {
		diag := diagnostics[shop]
		if !diag.Valid {
			diag.Problems = append(diag.Problems, "invalid shop domain")
		}

		if diag.Normalized != shop {
			diag.Problems = append(diag.Problems, fmt.Sprintf("should be %s", diag.Normalized))
		}

		if !diag.Installed && (diag.Challenges > 0 || diag.Participants > 0) {
			diag.Problems = append(diag.Problems, "data of a shop which has not installed the app")
		}

		resp.Shops = append(resp.Shops, *diag)
	}

	return resp, nil
}

func (d *maintenanceDomain) FixShopDomain(
	ctx context.Context, req *model.FixShopDomainRequest,
) (*model.FixShopDomainResponse, error) {
	if req.From == "" {
		return nil, errorx.NewField("from", "Source shop is required")
	}

	to := req.To
	if to == "" {
		to = req.From
	}
	to = common.NormalizeShopDomain(to)

	if !common.IsValidShopDomain(to) {
		return nil, errorx.NewField("to", "Invalid shop domain %s", to)
	}

	if to == req.From {
		return nil, errorx.NewField("to", "Nothing to fix, the shop domain is already %s", to)
	}

	resp := &model.FixShopDomainResponse{From: req.From, To: to, DryRun: req.DryRun}

	// A dry run does the same updates and rolls them back.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	var err error
	if resp.Challenges, err = d.challengeRepo.ReassignShop(ctx, req.From, to); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reassign challenges: %v", err)
		return nil, errorx.Unknown
	}

	if resp.Participants, err = d.participantRepo.ReassignShop(ctx, req.From, to); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reassign participants: %v", err)
		return nil, errorx.Unknown
	}

	// Settings are unique per shop, the settings of the target shop win.
	_, err = d.customizationRepo.Get(ctx, to)
	switch {
	case err == nil:
		if err := d.customizationRepo.DeleteByShop(ctx, req.From); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete settings: %v", err)
			return nil, errorx.Unknown
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		if resp.Settings, err = d.customizationRepo.ReassignShop(ctx, req.From, to); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reassign settings: %v", err)
			return nil, errorx.Unknown
		}

	default:
		xcontext.Logger(ctx).Errorf("Cannot get settings: %v", err)
		return nil, errorx.Unknown
	}

	if req.DryRun {
		return resp, nil
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit shop domain fix: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.Logger(ctx).Infof("Moved %d challenges, %d participants and %d settings from %s to %s",
		resp.Challenges, resp.Participants, resp.Settings, req.From, to)

	return resp, nil
}

func (d *maintenanceDomain) BackfillOrders(
	ctx context.Context, req *model.BackfillOrdersRequest,
) (*model.BackfillOrdersResponse, error) {
	shop := ""
	if req.Shop != "" {
		shop = common.NormalizeShopDomain(req.Shop)
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBackfillConcurrency
	}

	participants, err := d.participantRepo.GetMissingOrders(ctx, shop)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants without orders: %v", err)
		return nil, errorx.Unknown
	}

	var mutex sync.Mutex
	resp := &model.BackfillOrdersResponse{}

	// A failed participant doesn't stop the others.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range participants {
		participant := &participants[i]
		g.Go(func() error {
			result, err := d.orderSyncer.Sync(gctx, participant)

			mutex.Lock()
			defer mutex.Unlock()

			if err != nil {
				xcontext.Logger(gctx).Warnf("Cannot sync orders of participant %s: %v", participant.ID, err)
				resp.Failed++
				return nil
			}

			if result == syncUpdated {
				resp.Updated++
			} else {
				resp.NotFound++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	xcontext.Logger(ctx).Infof("Backfilled orders: %d updated, %d not found, %d failed",
		resp.Updated, resp.NotFound, resp.Failed)

	return resp, nil
}
