package repository

import (
	"context"
	"time"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ChallengeRepository interface {
	Create(ctx context.Context, e *entity.Challenge) error
	GetByID(ctx context.Context, id string) (*entity.Challenge, error)
	GetList(ctx context.Context, shop string) ([]entity.Challenge, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
	DeleteByID(ctx context.Context, id string) error
	GetCurrent(ctx context.Context, shop string, now time.Time) (*entity.Challenge, error)
	GetUpcoming(ctx context.Context, shop string, now time.Time) (*entity.Challenge, error)
	CountByShop(ctx context.Context) ([]ShopCount, error)
	ReassignShop(ctx context.Context, from, to string) (int64, error)
}

type challengeRepository struct{}

func NewChallengeRepository() *challengeRepository {
	return &challengeRepository{}
}

func (r *challengeRepository) Create(ctx context.Context, e *entity.Challenge) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *challengeRepository) GetByID(ctx context.Context, id string) (*entity.Challenge, error) {
	var result entity.Challenge
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *challengeRepository) GetList(ctx context.Context, shop string) ([]entity.Challenge, error) {
	var result []entity.Challenge
	err := xcontext.DB(ctx).
		Where("shop=?", shop).
		Order("start_date DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *challengeRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).Model(&entity.Challenge{}).Where("id=?", id).Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteByID removes the challenge with all of its participants, submissions
// and photos. It must be called in a transaction.
func (r *challengeRepository) DeleteByID(ctx context.Context, id string) error {
	db := xcontext.DB(ctx)
	participants := db.Model(&entity.Participant{}).Select("id").Where("challenge_id=?", id)
	submissions := db.Model(&entity.Submission{}).Select("id").Where("participant_id IN (?)", participants)

	if err := db.Where("submission_id IN (?)", submissions).Delete(&entity.Photo{}).Error; err != nil {
		return err
	}

	if err := db.Where("participant_id IN (?)", participants).Delete(&entity.Submission{}).Error; err != nil {
		return err
	}

	if err := db.Where("challenge_id=?", id).Delete(&entity.Participant{}).Error; err != nil {
		return err
	}

	tx := db.Delete(&entity.Challenge{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetCurrent returns the active challenge running at now. If many challenges
// overlap, the one started latest wins.
func (r *challengeRepository) GetCurrent(ctx context.Context, shop string, now time.Time) (*entity.Challenge, error) {
	var result entity.Challenge
	err := xcontext.DB(ctx).
		Where("shop=? AND is_active=? AND start_date<=? AND end_date>=?", shop, true, now, now).
		Order("start_date DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// GetUpcoming returns the earliest active challenge which has not started yet.
func (r *challengeRepository) GetUpcoming(ctx context.Context, shop string, now time.Time) (*entity.Challenge, error) {
	var result entity.Challenge
	err := xcontext.DB(ctx).
		Where("shop=? AND is_active=? AND start_date>?", shop, true, now).
		Order("start_date ASC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *challengeRepository) CountByShop(ctx context.Context) ([]ShopCount, error) {
	return countByShop(ctx, &entity.Challenge{})
}

func (r *challengeRepository) ReassignShop(ctx context.Context, from, to string) (int64, error) {
	return reassignShop(ctx, &entity.Challenge{}, from, to)
}
