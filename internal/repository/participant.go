package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const weightLossExpr = "(start_weight - end_weight)"
const weightLossPercentExpr = "((start_weight - end_weight) * 100.0 / start_weight)"

// ParticipantSortColumns maps the sortable columns of the admin table to their
// sql expressions.
var ParticipantSortColumns = map[string][]string{
	"email":               {"email"},
	"name":                {"first_name", "last_name"},
	"status":              {"status"},
	"start_weight":        {"start_weight"},
	"end_weight":          {"end_weight"},
	"weight_loss":         {weightLossExpr},
	"weight_loss_percent": {weightLossPercentExpr},
	"orders_count":        {"orders_count"},
	"total_spent":         {"total_spent"},
	"started_at":          {"started_at"},
	"completed_at":        {"completed_at"},
	"created_at":          {"created_at"},
}

type GetListParticipantFilter struct {
	ChallengeID string
	Shop        string
	Status      entity.ParticipantStatus

	// SortBy is a key of ParticipantSortColumns, created_at if empty.
	SortBy     string
	Descending bool

	Offset int
	Limit  int
}

type ParticipantStatistic struct {
	Total                int64
	NotStarted           int64
	InProgress           int64
	Completed            int64
	AvgWeightLossPercent float64
	TotalWeightLoss      float64
	TotalSpent           float64
}

type ParticipantRepository interface {
	Create(ctx context.Context, e *entity.Participant) error
	Get(ctx context.Context, challengeID, customerID string) (*entity.Participant, error)
	GetByID(ctx context.Context, id string) (*entity.Participant, error)
	GetList(ctx context.Context, filter GetListParticipantFilter) ([]entity.Participant, error)
	Count(ctx context.Context, filter GetListParticipantFilter) (int64, error)
	GetLeaderboard(ctx context.Context, challengeID string, limit int) ([]entity.Participant, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	UpdateStatus(ctx context.Context, id string, from, to entity.ParticipantStatus, data map[string]any) error
	GetMissingOrders(ctx context.Context, shop string) ([]entity.Participant, error)
	Statistic(ctx context.Context, challengeID string) (*ParticipantStatistic, error)
	CountByShop(ctx context.Context) ([]ShopCount, error)
	ReassignShop(ctx context.Context, from, to string) (int64, error)
}

type participantRepository struct{}

func NewParticipantRepository() *participantRepository {
	return &participantRepository{}
}

func (r *participantRepository) Create(ctx context.Context, e *entity.Participant) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *participantRepository) Get(ctx context.Context, challengeID, customerID string) (*entity.Participant, error) {
	var result entity.Participant
	err := xcontext.DB(ctx).
		Where("challenge_id=? AND customer_id=?", challengeID, customerID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*entity.Participant, error) {
	var result entity.Participant
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) filter(ctx context.Context, filter GetListParticipantFilter) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.Participant{})
	if filter.ChallengeID != "" {
		tx = tx.Where("challenge_id=?", filter.ChallengeID)
	}

	if filter.Shop != "" {
		tx = tx.Where("shop=?", filter.Shop)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	return tx
}

func (r *participantRepository) GetList(ctx context.Context, filter GetListParticipantFilter) ([]entity.Participant, error) {
	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}

	columns, ok := ParticipantSortColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("invalid sort column %s", sortBy)
	}

	order := "ASC"
	if filter.Descending {
		order = "DESC"
	}

	// Rows without a value of the sort column always go last.
	tx := r.filter(ctx, filter)
	for _, column := range columns {
		tx = tx.Order(fmt.Sprintf("CASE WHEN %s IS NULL THEN 1 ELSE 0 END", column)).
			Order(fmt.Sprintf("%s %s", column, order))
	}
	tx = tx.Order("id")

	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var result []entity.Participant
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *participantRepository) Count(ctx context.Context, filter GetListParticipantFilter) (int64, error) {
	var result int64
	if err := r.filter(ctx, filter).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

// GetLeaderboard returns completed participants ordered by the weight loss
// percentage, then the weight loss, then who completed first. Both results are
// compared as displayed, rounded to 2 decimals.
func (r *participantRepository) GetLeaderboard(ctx context.Context, challengeID string, limit int) ([]entity.Participant, error) {
	var result []entity.Participant
	err := xcontext.DB(ctx).
		Where("challenge_id=? AND status=?", challengeID, entity.ParticipantCompleted).
		Where("start_weight > 0 AND end_weight IS NOT NULL").
		Order("completed_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		lossI, percentI := common.WeightLoss(&result[i].StartWeight.Float64, &result[i].EndWeight.Float64)
		lossJ, percentJ := common.WeightLoss(&result[j].StartWeight.Float64, &result[j].EndWeight.Float64)
		if *percentI != *percentJ {
			return *percentI > *percentJ
		}

		return *lossI > *lossJ
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

func (r *participantRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).Model(&entity.Participant{}).Where("id=?", id).Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// UpdateStatus moves the participant from one status to another. It returns
// gorm.ErrRecordNotFound if the participant is not in the from status anymore.
func (r *participantRepository) UpdateStatus(
	ctx context.Context, id string, from, to entity.ParticipantStatus, data map[string]any,
) error {
	updates := map[string]any{"status": to}
	for k, v := range data {
		updates[k] = v
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Participant{}).
		Where("id=? AND status=?", id, from).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetMissingOrders returns participants whose order data has never been
// synced. An empty shop means all shops.
func (r *participantRepository) GetMissingOrders(ctx context.Context, shop string) ([]entity.Participant, error) {
	tx := xcontext.DB(ctx).Where("orders_synced_at IS NULL")
	if shop != "" {
		tx = tx.Where("shop=?", shop)
	}

	var result []entity.Participant
	if err := tx.Order("created_at").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *participantRepository) Statistic(ctx context.Context, challengeID string) (*ParticipantStatistic, error) {
	var counts []struct {
		Status entity.ParticipantStatus
		Count  int64
	}

	err := xcontext.DB(ctx).Model(&entity.Participant{}).
		Select("status, COUNT(*) AS count").
		Where("challenge_id=?", challengeID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	result := &ParticipantStatistic{}
	for _, c := range counts {
		result.Total += c.Count
		switch c.Status {
		case entity.ParticipantNotStarted:
			result.NotStarted = c.Count
		case entity.ParticipantInProgress:
			result.InProgress = c.Count
		case entity.ParticipantCompleted:
			result.Completed = c.Count
		}
	}

	var aggregate struct {
		AvgPercent float64
		TotalLoss  float64
	}
	err = xcontext.DB(ctx).Model(&entity.Participant{}).
		Select(fmt.Sprintf("COALESCE(AVG(%s), 0) AS avg_percent, COALESCE(SUM(%s), 0) AS total_loss",
			weightLossPercentExpr, weightLossExpr)).
		Where("challenge_id=? AND status=?", challengeID, entity.ParticipantCompleted).
		Where("start_weight > 0 AND end_weight IS NOT NULL").
		Scan(&aggregate).Error
	if err != nil {
		return nil, err
	}

	result.AvgWeightLossPercent = aggregate.AvgPercent
	result.TotalWeightLoss = aggregate.TotalLoss

	err = xcontext.DB(ctx).Model(&entity.Participant{}).
		Select("COALESCE(SUM(total_spent), 0)").
		Where("challenge_id=?", challengeID).
		Scan(&result.TotalSpent).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *participantRepository) CountByShop(ctx context.Context) ([]ShopCount, error) {
	return countByShop(ctx, &entity.Participant{})
}

func (r *participantRepository) ReassignShop(ctx context.Context, from, to string) (int64, error) {
	return reassignShop(ctx, &entity.Participant{}, from, to)
}
