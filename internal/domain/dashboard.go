package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/fitchallenge/backend/pkg/enum"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const defaultLeaderboardLimit = 10

type DashboardDomain interface {
	GetListParticipant(context.Context, *model.GetListParticipantRequest) (*model.GetListParticipantResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetComparison(context.Context, *model.GetComparisonRequest) (*model.GetComparisonResponse, error)
	GetStatistic(context.Context, *model.GetStatisticRequest) (*model.GetStatisticResponse, error)
	RefreshOrders(context.Context, *model.RefreshOrdersRequest) (*model.RefreshOrdersResponse, error)
}

type dashboardDomain struct {
	challengeRepo   repository.ChallengeRepository
	participantRepo repository.ParticipantRepository
	submissionRepo  repository.SubmissionRepository
	photoRepo       repository.PhotoRepository
	orderSyncer     *orderSyncer
}

func NewDashboardDomain(
	challengeRepo repository.ChallengeRepository,
	participantRepo repository.ParticipantRepository,
	submissionRepo repository.SubmissionRepository,
	photoRepo repository.PhotoRepository,
	shopSessionRepo repository.ShopSessionRepository,
	shopifyEndpoint shopify.IEndpoint,
) *dashboardDomain {
	return &dashboardDomain{
		challengeRepo:   challengeRepo,
		participantRepo: participantRepo,
		submissionRepo:  submissionRepo,
		photoRepo:       photoRepo,
		orderSyncer:     newOrderSyncer(participantRepo, shopSessionRepo, shopifyEndpoint),
	}
}

func (d *dashboardDomain) GetListParticipant(
	ctx context.Context, req *model.GetListParticipantRequest,
) (*model.GetListParticipantResponse, error) {
	if _, err := d.getOwnedChallenge(ctx, req.ChallengeID); err != nil {
		return nil, err
	}

	if req.SortBy == "" {
		req.SortBy = "created_at"
	}

	if _, ok := repository.ParticipantSortColumns[req.SortBy]; !ok {
		return nil, errorx.NewField("sort_by", "Cannot sort by %s", req.SortBy)
	}

	descending := true
	switch strings.ToLower(req.Order) {
	case "", "desc":
	case "asc":
		descending = false
	default:
		return nil, errorx.NewField("order", "Order must be asc or desc")
	}

	var status entity.ParticipantStatus
	if req.Status != "" {
		var err error
		status, err = enum.ToEnum[entity.ParticipantStatus](strings.ToUpper(req.Status))
		if err != nil {
			return nil, errorx.NewField("status", "Invalid status")
		}
	}

	if req.Offset < 0 {
		return nil, errorx.NewField("offset", "Not allow negative offset")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.NewField("limit", "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.NewField("limit", "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	filter := repository.GetListParticipantFilter{
		ChallengeID: req.ChallengeID,
		Status:      status,
		SortBy:      req.SortBy,
		Descending:  descending,
		Offset:      req.Offset,
		Limit:       req.Limit,
	}

	participants, err := d.participantRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participant list: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.participantRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	clientParticipants := []model.Participant{}
	for i := range participants {
		clientParticipants = append(clientParticipants, convertParticipant(&participants[i]))
	}

	return &model.GetListParticipantResponse{Participants: clientParticipants, Total: total}, nil
}

func (d *dashboardDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if _, err := d.getOwnedChallenge(ctx, req.ChallengeID); err != nil {
		return nil, err
	}

	if req.Limit < 0 {
		return nil, errorx.NewField("limit", "Limit must be positive")
	}

	if req.Limit == 0 {
		req.Limit = defaultLeaderboardLimit
	}

	participants, err := d.participantRepo.GetLeaderboard(ctx, req.ChallengeID, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	rank := 0
	var previous *model.Participant
	for i := range participants {
		participant := convertParticipant(&participants[i])

		// Dense ranking, the same result shares the same rank.
		if previous == nil || !sameResult(previous, &participant) {
			rank++
		}

		entries = append(entries, model.LeaderboardEntry{Rank: rank, Participant: participant})
		previous = &entries[len(entries)-1].Participant
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}

func (d *dashboardDomain) GetComparison(
	ctx context.Context, req *model.GetComparisonRequest,
) (*model.GetComparisonResponse, error) {
	if req.ParticipantID == "" {
		return nil, errorx.NewField("participant_id", "Participant id is required")
	}

	participant, err := d.participantRepo.GetByID(ctx, req.ParticipantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found participant")
		}

		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	if participant.Shop != xcontext.Shop(ctx) {
		return nil, errorx.New(errorx.NotFound, "Not found participant")
	}

	submissions, err := d.submissionRepo.GetByParticipantID(ctx, participant.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, errorx.Unknown
	}

	submissionIDs := []string{}
	for _, s := range submissions {
		submissionIDs = append(submissionIDs, s.ID)
	}

	photos, err := d.photoRepo.GetBySubmissionIDs(ctx, submissionIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get photos: %v", err)
		return nil, errorx.Unknown
	}

	photoMap := map[string][]entity.Photo{}
	for _, p := range photos {
		photoMap[p.SubmissionID] = append(photoMap[p.SubmissionID], p)
	}

	resp := &model.GetComparisonResponse{Participant: convertParticipant(participant)}
	for i := range submissions {
		submission := &submissions[i]
		switch submission.Type {
		case entity.SubmissionStart:
			resp.Before = convertSubmission(submission, photoMap[submission.ID])
		case entity.SubmissionEnd:
			resp.After = convertSubmission(submission, photoMap[submission.ID])
		}
	}

	return resp, nil
}

func (d *dashboardDomain) GetStatistic(
	ctx context.Context, req *model.GetStatisticRequest,
) (*model.GetStatisticResponse, error) {
	if _, err := d.getOwnedChallenge(ctx, req.ChallengeID); err != nil {
		return nil, err
	}

	statistic, err := d.participantRepo.Statistic(ctx, req.ChallengeID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participant statistic: %v", err)
		return nil, errorx.Unknown
	}

	completionRate := 0.0
	if statistic.Total > 0 {
		completionRate = common.Round(float64(statistic.Completed)*100/float64(statistic.Total), 2)
	}

	return &model.GetStatisticResponse{
		Total:                statistic.Total,
		NotStarted:           statistic.NotStarted,
		InProgress:           statistic.InProgress,
		Completed:            statistic.Completed,
		CompletionRate:       completionRate,
		AvgWeightLossPercent: common.Round(statistic.AvgWeightLossPercent, 2),
		TotalWeightLoss:      common.Round(statistic.TotalWeightLoss, 2),
		TotalSpent:           common.Round(statistic.TotalSpent, 2),
	}, nil
}

func (d *dashboardDomain) RefreshOrders(
	ctx context.Context, req *model.RefreshOrdersRequest,
) (*model.RefreshOrdersResponse, error) {
	var participants []entity.Participant
	switch {
	case req.ParticipantID != "":
		participant, err := d.participantRepo.GetByID(ctx, req.ParticipantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found participant")
			}

			xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
			return nil, errorx.Unknown
		}

		if participant.Shop != xcontext.Shop(ctx) {
			return nil, errorx.New(errorx.NotFound, "Not found participant")
		}

		participants = append(participants, *participant)

	case req.ChallengeID != "":
		if _, err := d.getOwnedChallenge(ctx, req.ChallengeID); err != nil {
			return nil, err
		}

		var err error
		participants, err = d.participantRepo.GetList(ctx, repository.GetListParticipantFilter{
			ChallengeID: req.ChallengeID,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get participant list: %v", err)
			return nil, errorx.Unknown
		}

	default:
		return nil, errorx.New(errorx.BadRequest, "Either participant id or challenge id is required")
	}

	resp := &model.RefreshOrdersResponse{}
	for i := range participants {
		result, err := d.orderSyncer.Sync(ctx, &participants[i])
		if err != nil {
			if errors.Is(err, errShopNotInstalled) {
				return nil, errorx.New(errorx.Unavailable, "The app is not installed on this shop")
			}

			xcontext.Logger(ctx).Warnf("Cannot sync orders of participant %s: %v", participants[i].ID, err)
			resp.Failed++
			continue
		}

		switch result {
		case syncUpdated:
			resp.Updated++
		case syncNotFound:
			resp.NotFound++
		}
	}

	return resp, nil
}

func (d *dashboardDomain) getOwnedChallenge(ctx context.Context, id string) (*entity.Challenge, error) {
	if id == "" {
		return nil, errorx.NewField("challenge_id", "Challenge id is required")
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

func sameResult(a, b *model.Participant) bool {
	return equalFloat(a.WeightLossPercent, b.WeightLossPercent) && equalFloat(a.WeightLoss, b.WeightLoss)
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
