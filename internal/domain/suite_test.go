package domain

import (
	"context"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/repository"
)

// racingParticipantRepository runs onCreate right before creating a
// participant, simulating a concurrent request.
type racingParticipantRepository struct {
	repository.ParticipantRepository
	onCreate func()
}

func (r *racingParticipantRepository) Create(ctx context.Context, e *entity.Participant) error {
	if r.onCreate != nil {
		r.onCreate()
	}
	return r.ParticipantRepository.Create(ctx, e)
}
