package repository

import (
	"context"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
)

type SubmissionRepository interface {
	Create(ctx context.Context, e *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	GetByParticipantID(ctx context.Context, participantID string) ([]entity.Submission, error)
	Exists(ctx context.Context, participantID string, submissionType entity.SubmissionType) (bool, error)
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

func (r *submissionRepository) Create(ctx context.Context, e *entity.Submission) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var result entity.Submission
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) GetByParticipantID(ctx context.Context, participantID string) ([]entity.Submission, error) {
	var result []entity.Submission
	err := xcontext.DB(ctx).
		Where("participant_id=?", participantID).
		Order("submitted_at").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *submissionRepository) Exists(
	ctx context.Context, participantID string, submissionType entity.SubmissionType,
) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Submission{}).
		Where("participant_id=? AND type=?", participantID, submissionType).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
