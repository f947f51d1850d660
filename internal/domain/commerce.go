package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"gorm.io/gorm"
)

var errShopNotInstalled = errors.New("shop has not installed the app")

type syncResult int

const (
	syncUpdated syncResult = iota
	syncNotFound
)

// orderSyncer copies the order count and the total spend of a participant
// from the commerce platform. The data is only displayed, it never gates
// anything.
type orderSyncer struct {
	participantRepo repository.ParticipantRepository
	shopSessionRepo repository.ShopSessionRepository
	shopifyEndpoint shopify.IEndpoint
}

func newOrderSyncer(
	participantRepo repository.ParticipantRepository,
	shopSessionRepo repository.ShopSessionRepository,
	shopifyEndpoint shopify.IEndpoint,
) *orderSyncer {
	return &orderSyncer{
		participantRepo: participantRepo,
		shopSessionRepo: shopSessionRepo,
		shopifyEndpoint: shopifyEndpoint,
	}
}

func (s *orderSyncer) Sync(ctx context.Context, participant *entity.Participant) (syncResult, error) {
	session, err := s.shopSessionRepo.Get(ctx, participant.Shop)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errShopNotInstalled
		}
		return 0, err
	}

	now := time.Now().UTC()
	customer, err := s.shopifyEndpoint.FindCustomerByEmail(ctx, participant.Shop, session.AccessToken, participant.Email)
	if err != nil {
		if !errors.Is(err, shopify.ErrCustomerNotFound) {
			common.PromCounters[common.CommerceLookupTotal].WithLabelValues("error").Inc()
			return 0, err
		}

		common.PromCounters[common.CommerceLookupTotal].WithLabelValues("not_found").Inc()
		err := s.participantRepo.UpdateByID(ctx, participant.ID, map[string]any{
			"orders_synced_at": sql.NullTime{Valid: true, Time: now},
		})
		if err != nil {
			return 0, err
		}

		participant.OrdersSyncedAt = sql.NullTime{Valid: true, Time: now}
		return syncNotFound, nil
	}

	common.PromCounters[common.CommerceLookupTotal].WithLabelValues("found").Inc()
	participant.CommerceCustomerID = sql.NullString{Valid: true, String: customer.IDString()}
	participant.OrdersCount = sql.NullInt64{Valid: true, Int64: int64(customer.OrdersCount)}
	participant.TotalSpent = sql.NullFloat64{Valid: true, Float64: customer.TotalSpent}
	participant.OrdersSyncedAt = sql.NullTime{Valid: true, Time: now}

	err = s.participantRepo.UpdateByID(ctx, participant.ID, map[string]any{
		"commerce_customer_id": participant.CommerceCustomerID,
		"orders_count":         participant.OrdersCount,
		"total_spent":          participant.TotalSpent,
		"orders_synced_at":     participant.OrdersSyncedAt,
	})
	if err != nil {
		return 0, err
	}

	return syncUpdated, nil
}
