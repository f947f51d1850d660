package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxChallengeNameLength = 255

type ChallengeDomain interface {
	Create(context.Context, *model.CreateChallengeRequest) (*model.CreateChallengeResponse, error)
	Get(context.Context, *model.GetChallengeRequest) (*model.GetChallengeResponse, error)
	GetList(context.Context, *model.GetListChallengeRequest) (*model.GetListChallengeResponse, error)
	Update(context.Context, *model.UpdateChallengeRequest) (*model.UpdateChallengeResponse, error)
	Delete(context.Context, *model.DeleteChallengeRequest) (*model.DeleteChallengeResponse, error)
	SetActive(context.Context, *model.SetActiveChallengeRequest) (*model.SetActiveChallengeResponse, error)
}

type challengeDomain struct {
	challengeRepo repository.ChallengeRepository
}

func NewChallengeDomain(challengeRepo repository.ChallengeRepository) *challengeDomain {
	return &challengeDomain{challengeRepo: challengeRepo}
}

func (d *challengeDomain) Create(
	ctx context.Context, req *model.CreateChallengeRequest,
) (*model.CreateChallengeResponse, error) {
	shop := xcontext.Shop(ctx)
	if shop == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Unknown shop")
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := validateChallenge(req.Name, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	challenge := &entity.Challenge{
		Base:        entity.Base{ID: uuid.NewString()},
		Shop:        shop,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
		IsActive:    req.IsActive,
	}

	if err := d.challengeRepo.Create(ctx, challenge); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateChallengeResponse{ID: challenge.ID}, nil
}

func (d *challengeDomain) Get(
	ctx context.Context, req *model.GetChallengeRequest,
) (*model.GetChallengeResponse, error) {
	challenge, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetChallengeResponse{Challenge: convertChallenge(challenge)}, nil
}

func (d *challengeDomain) GetList(
	ctx context.Context, req *model.GetListChallengeRequest,
) (*model.GetListChallengeResponse, error) {
	challenges, err := d.challengeRepo.GetList(ctx, xcontext.Shop(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get challenge list: %v", err)
		return nil, errorx.Unknown
	}

	clientChallenges := []model.Challenge{}
	for i := range challenges {
		clientChallenges = append(clientChallenges, convertChallenge(&challenges[i]))
	}

	return &model.GetListChallengeResponse{Challenges: clientChallenges}, nil
}

func (d *challengeDomain) Update(
	ctx context.Context, req *model.UpdateChallengeRequest,
) (*model.UpdateChallengeResponse, error) {
	challenge, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// Omitted fields keep their current values.
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = challenge.Name
	}

	startDate, endDate := challenge.StartDate, challenge.EndDate
	if !req.StartDate.IsZero() {
		startDate = req.StartDate.UTC()
	}
	if !req.EndDate.IsZero() {
		endDate = req.EndDate.UTC()
	}

	if err := validateChallenge(name, startDate, endDate); err != nil {
		return nil, err
	}

	data := map[string]any{
		"name":       name,
		"start_date": startDate,
		"end_date":   endDate,
	}

	if req.Description != nil {
		data["description"] = *req.Description
	}

	if req.IsActive != nil {
		data["is_active"] = *req.IsActive
	}

	if err := d.challengeRepo.UpdateByID(ctx, challenge.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateChallengeResponse{}, nil
}

func (d *challengeDomain) Delete(
	ctx context.Context, req *model.DeleteChallengeRequest,
) (*model.DeleteChallengeResponse, error) {
	challenge, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.challengeRepo.DeleteByID(ctx, challenge.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete challenge: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit challenge deletion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteChallengeResponse{}, nil
}

func (d *challengeDomain) SetActive(
	ctx context.Context, req *model.SetActiveChallengeRequest,
) (*model.SetActiveChallengeResponse, error) {
	challenge, err := d.getOwned(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	err = d.challengeRepo.UpdateByID(ctx, challenge.ID, map[string]any{"is_active": req.IsActive})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update challenge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetActiveChallengeResponse{}, nil
}

// getOwned returns the challenge only if it belongs to the shop of the admin.
func (d *challengeDomain) getOwned(ctx context.Context, id string) (*entity.Challenge, error) {
	if id == "" {
		return nil, errorx.NewField("id", "Challenge id is required")
	}

	challenge, err := d.challengeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found challenge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get challenge: %v", err)
		return nil, errorx.Unknown
	}

	if challenge.Shop != xcontext.Shop(ctx) {
		return nil, errorx.New(errorx.NotFound, "Not found challenge")
	}

	return challenge, nil
}

// validateChallenge rejects a zero-length window, a challenge must start
// strictly before it ends.
func validateChallenge(name string, startDate, endDate time.Time) error {
	if name == "" {
		return errorx.NewField("name", "Name is required")
	}

	if len(name) > maxChallengeNameLength {
		return errorx.NewField("name", "Name must be at most %d characters", maxChallengeNameLength)
	}

	if startDate.IsZero() {
		return errorx.NewField("start_date", "Start date is required")
	}

	if endDate.IsZero() {
		return errorx.NewField("end_date", "End date is required")
	}

	if !startDate.Before(endDate) {
		return errorx.NewField("end_date", "Start date must be before end date")
	}

	return nil
}
