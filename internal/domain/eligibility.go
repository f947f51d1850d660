package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReasonNoActiveChallenge = "No active challenge available"
	ReasonAlreadyStarted    = "You have already started this challenge"
	ReasonNotStarted        = "You must start the challenge first"
	ReasonStartFormMissing  = "You must complete the start form first"
	ReasonAlreadyCompleted  = "You have already completed this challenge"
)

// ParticipantIdentity is who joins the challenge. FirstName and LastName are
// optional.
type ParticipantIdentity struct {
	CustomerID string
	Email      string
	FirstName  string
	LastName   string
}

type EligibilityDomain interface {
	// GetActiveChallenge returns nil (without error) if the shop has neither a
	// running nor an upcoming challenge.
	GetActiveChallenge(ctx context.Context, shop string) (*entity.Challenge, error)
	CanStart(ctx context.Context, shop, customerID string) (model.Eligibility, error)
	CanEnd(ctx context.Context, shop, customerID string) (model.Eligibility, error)

	// GetOrCreateParticipant returns nil (without error) if there is no
	// active challenge. An existing participant is never overwritten.
	GetOrCreateParticipant(ctx context.Context, shop string, identity ParticipantIdentity) (*entity.Participant, error)
}

type eligibilityDomain struct {
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ParticipantRepository
	submissionRepo  repository.SubmissionRepository

	now func() time.Time
}

func NewEligibilityDomain(
	challengeRepo repository.ChallengeRepository,
	participantRepo repository.ParticipantRepository,
	submissionRepo repository.SubmissionRepository,
) *eligibilityDomain {
	return &eligibilityDomain{
		challengeRepo:   challengeRepo,
		participantRepo: participantRepo,
		submissionRepo:  submissionRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (d *eligibilityDomain) GetActiveChallenge(ctx context.Context, shop string) (*entity.Challenge, error) {
	now := d.now()

	// Ongoing challenges take priority, the latest started one wins if
	// several windows overlap.
	challenge, err := d.challengeRepo.GetCurrent(ctx, shop, now)
	if err == nil {
		return challenge, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	challenge, err = d.challengeRepo.GetUpcoming(ctx, shop, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return challenge, nil
}

func (d *eligibilityDomain) CanStart(ctx context.Context, shop, customerID string) (model.Eligibility, error) {
	challenge, err := d.GetActiveChallenge(ctx, shop)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return model.Eligibility{}, errorx.Unknown
	}

	return d.canStart(ctx, challenge, customerID)
}

func (d *eligibilityDomain) CanEnd(ctx context.Context, shop, customerID string) (model.Eligibility, error) {
	challenge, err := d.GetActiveChallenge(ctx, shop)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return model.Eligibility{}, errorx.Unknown
	}

	return d.canEnd(ctx, challenge, customerID)
}

func (d *eligibilityDomain) canStart(
	ctx context.Context, challenge *entity.Challenge, customerID string,
) (model.Eligibility, error) {
	if challenge == nil {
		return notEligible(ReasonNoActiveChallenge), nil
	}

	participant, err := d.participantRepo.Get(ctx, challenge.ID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return eligible(), nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return model.Eligibility{}, errorx.Unknown
	}

	// A NOT_STARTED participant may still own a START submission left by an
	// interrupted request, both conditions are required.
	if participant.Status != entity.ParticipantNotStarted {
		return notEligible(ReasonAlreadyStarted), nil
	}

	started, err := d.submissionRepo.Exists(ctx, participant.ID, entity.SubmissionStart)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check start submission: %v", err)
		return model.Eligibility{}, errorx.Unknown
	}

	if started {
		return notEligible(ReasonAlreadyStarted), nil
	}

	return eligible(), nil
}

func (d *eligibilityDomain) canEnd(
	ctx context.Context, challenge *entity.Challenge, customerID string,
) (model.Eligibility, error) {
	if challenge == nil {
		return notEligible(ReasonNoActiveChallenge), nil
	}

	participant, err := d.participantRepo.Get(ctx, challenge.ID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notEligible(ReasonNotStarted), nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return model.Eligibility{}, errorx.Unknown
	}

	started, err := d.submissionRepo.Exists(ctx, participant.ID, entity.SubmissionStart)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check start submission: %v", err)
		return model.Eligibility{}, errorx.Unknown
	}

	if !started {
		return notEligible(ReasonStartFormMissing), nil
	}

	ended, err := d.submissionRepo.Exists(ctx, participant.ID, entity.SubmissionEnd)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check end submission: %v", err)
		return model.Eligibility{}, errorx.Unknown
	}

	if ended {
		return notEligible(ReasonAlreadyCompleted), nil
	}

	return eligible(), nil
}

func (d *eligibilityDomain) GetOrCreateParticipant(
	ctx context.Context, shop string, identity ParticipantIdentity,
) (*entity.Participant, error) {
	challenge, err := d.GetActiveChallenge(ctx, shop)
	if err != nil {
		return nil, err
	}

	if challenge == nil {
		return nil, nil
	}

	return d.getOrCreateParticipant(ctx, challenge, identity)
}

func (d *eligibilityDomain) getOrCreateParticipant(
	ctx context.Context, challenge *entity.Challenge, identity ParticipantIdentity,
) (*entity.Participant, error) {
	participant, err := d.participantRepo.Get(ctx, challenge.ID, identity.CustomerID)
	if err == nil {
		return participant, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	participant = &entity.Participant{
		Base:        entity.Base{ID: uuid.NewString()},
		ChallengeID: challenge.ID,
		CustomerID:  identity.CustomerID,
		Shop:        challenge.Shop,
		Email:       identity.Email,
		FirstName:   sql.NullString{Valid: identity.FirstName != "", String: identity.FirstName},
		LastName:    sql.NullString{Valid: identity.LastName != "", String: identity.LastName},
		Status:      entity.ParticipantNotStarted,
	}

	if err := d.participantRepo.Create(ctx, participant); err != nil {
		// Another request may have created the participant in the meantime,
		// the unique (challenge, customer) constraint rejected this one.
		existing, getErr := d.participantRepo.Get(ctx, challenge.ID, identity.CustomerID)
		if getErr != nil {
			return nil, err
		}

		return existing, nil
	}

	return participant, nil
}

func eligible() model.Eligibility {
	return model.Eligibility{Eligible: true}
}

func notEligible(reason string) model.Eligibility {
	return model.Eligibility{Eligible: false, Reason: reason}
}
