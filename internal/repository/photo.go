package repository

import (
	"context"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
)

type PhotoRepository interface {
	BulkInsert(ctx context.Context, photos []entity.Photo) error
	GetBySubmissionIDs(ctx context.Context, submissionIDs []string) ([]entity.Photo, error)
}

type photoRepository struct{}

func NewPhotoRepository() *photoRepository {
	return &photoRepository{}
}

func (r *photoRepository) BulkInsert(ctx context.Context, photos []entity.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(&photos).Error
}

func (r *photoRepository) GetBySubmissionIDs(ctx context.Context, submissionIDs []string) ([]entity.Photo, error) {
	var result []entity.Photo
	err := xcontext.DB(ctx).
		Where("submission_id IN (?)", submissionIDs).
		Order("submission_id").
		Order("photo_order").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
