package domain

import (
	"context"
	"testing"
	"time"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/mocks"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/testutil"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestDashboardDomain(endpoint shopify.IEndpoint) *dashboardDomain {
	if endpoint == nil {
		endpoint = &mocks.ShopifyEndpoint{}
	}

	return NewDashboardDomain(
		repository.NewChallengeRepository(),
		repository.NewParticipantRepository(),
		repository.NewSubmissionRepository(),
		repository.NewPhotoRepository(),
		repository.NewShopSessionRepository(),
		endpoint,
	)
}

// sampleResults creates participants of the challenge with distinct results.
func sampleResults(ctx context.Context, challengeID string) {
	now := time.Now().UTC()
	testutil.CompletedParticipant(ctx, challengeID, "a@example.com", 200, 180, now.Add(-3*time.Hour))
	testutil.CompletedParticipant(ctx, challengeID, "b@example.com", 100, 90, now.Add(-2*time.Hour))
	testutil.CompletedParticipant(ctx, challengeID, "c@example.com", 200, 180, now.Add(-time.Hour))
	testutil.CompletedParticipant(ctx, challengeID, "d@example.com", 300, 300, now)
	testutil.SampleParticipant(ctx, &entity.Participant{ChallengeID: challengeID, Email: "e@example.com"})
}

func emailsOf(participants []model.Participant) []string {
	emails := []string{}
	for _, p := range participants {
		emails = append(emails, p.Email)
	}
	return emails
}

func Test_dashboardDomain_GetListParticipant(t *testing.T) {
	ctx := xcontext.WithShop(testutil.MockContext(), testutil.Shop)
	challenge := testutil.SampleChallenge(ctx, nil)
	sampleResults(ctx, challenge.ID)
	d := newTestDashboardDomain(nil)

	tests := []struct {
		name       string
		req        *model.GetListParticipantRequest
		wantEmails []string
		wantTotal  int64
		wantErr    error
	}{
		{
			name: "by email",
			req:  &model.GetListParticipantRequest{ChallengeID: challenge.ID, SortBy: "email", Order: "asc"},
			wantEmails: []string{
				"a@example.com", "b@example.com", "c@example.com", "d@example.com", "e@example.com",
			},
			wantTotal: 5,
		},
		{
			name: "by completion, missing values last",
			req:  &model.GetListParticipantRequest{ChallengeID: challenge.ID, SortBy: "completed_at", Order: "desc"},
			wantEmails: []string{
				"d@example.com", "c@example.com", "b@example.com", "a@example.com", "e@example.com",
			},
			wantTotal: 5,
		},
		{
			name:       "filter by status with paging",
			req:        &model.GetListParticipantRequest{ChallengeID: challenge.ID, Status: "completed", SortBy: "email", Order: "asc", Offset: 1, Limit: 2},
			wantEmails: []string{"b@example.com", "c@example.com"},
			wantTotal:  4,
		},
		{
			name:    "unknown sort column",
			req:     &model.GetListParticipantRequest{ChallengeID: challenge.ID, SortBy: "password"},
			wantErr: errorx.NewField("sort_by", "Cannot sort by password"),
		},
		{
			name:    "invalid order",
			req:     &model.GetListParticipantRequest{ChallengeID: challenge.ID, Order: "sideways"},
			wantErr: errorx.NewField("order", "Order must be asc or desc"),
		},
		{
			name:    "invalid status",
			req:     &model.GetListParticipantRequest{ChallengeID: challenge.ID, Status: "DONE"},
			wantErr: errorx.NewField("status", "Invalid status"),
		},
		{
			name:    "limit too large",
			req:     &model.GetListParticipantRequest{ChallengeID: challenge.ID, Limit: 501},
			wantErr: errorx.NewField("limit", "Exceed the maximum of limit (500)"),
		},
		{
			name:    "missing challenge",
			req:     &model.GetListParticipantRequest{},
			wantErr: errorx.NewField("challenge_id", "Challenge id is required"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := d.GetListParticipant(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantEmails, emailsOf(resp.Participants))
			require.Equal(t, tt.wantTotal, resp.Total)
		})
	}
}

func Test_dashboardDomain_WeightLoss(t *testing.T) {
	ctx := xcontext.WithShop(testutil.MockContext(), testutil.Shop)
	challenge := testutil.SampleChallenge(ctx, nil)
	testutil.CompletedParticipant(ctx, challenge.ID, "a@example.com", 187.3, 171.8, time.Now().UTC())

	resp, err := newTestDashboardDomain(nil).GetListParticipant(ctx, &model.GetListParticipantRequest{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Participants, 1)
	require.Equal(t, 15.5, *resp.Participants[0].WeightLoss)
	require.Equal(t, 8.28, *resp.Participants[0].WeightLossPercent)
}

func Test_dashboardDomain_GetLeaderboard(t *testing.T) {
	ctx := xcontext.WithShop(testutil.MockContext(), testutil.Shop)
	challenge := testutil.SampleChallenge(ctx, nil)
	sampleResults(ctx, challenge.ID)

	resp, err := newTestDashboardDomain(nil).GetLeaderboard(ctx, &model.GetLeaderboardRequest{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)

	var emails []string
	var ranks []int
	for _, e := range resp.Entries {
		emails = append(emails, e.Participant.Email)
		ranks = append(ranks, e.Rank)
	}

	// a and c have the same result, a completed first.
	require.Equal(t, []string{"a@example.com", "c@example.com", "b@example.com", "d@example.com"}, emails)
	require.Equal(t, []int{1, 1, 2, 3}, ranks)
}

func Test_dashboardDomain_GetComparison(t *testing.T) {
	ctx := xcontext.WithShop(testutil.MockContext(), testutil.Shop)
	challenge := testutil.SampleChallenge(ctx, nil)
	participant := testutil.CompletedParticipant(ctx, challenge.ID, "a@example.com", 200, 180, time.Now().UTC())
	d := newTestDashboardDomain(nil)

	resp, err := d.GetComparison(ctx, &model.GetComparisonRequest{ParticipantID: participant.ID})
	require.NoError(t, err)
	require.Equal(t, participant.ID, resp.Participant.ID)
	require.Equal(t, 200.0, resp.Before.Weight)
	require.Equal(t, 180.0, resp.After.Weight)
	require.Len(t, resp.Before.Photos, 3)
	require.Len(t, resp.After.Photos, 3)
	require.Equal(t, string(entity.PhotoFront), resp.Before.Photos[0].Orientation)

	inProgress := testutil.SampleParticipant(ctx, &entity.Participant{
		ChallengeID: challenge.ID,
		Status:      entity.ParticipantInProgress,
	})
	testutil.SampleSubmission(ctx, &entity.Submission{ParticipantID: inProgress.ID})

	resp, err = d.GetComparison(ctx, &model.GetComparisonRequest{ParticipantID: inProgress.ID})
	require.NoError(t, err)
	require.NotNil(t, resp.Before)
	require.Nil(t, resp.After)

	_, err = d.GetComparison(ctx, &model.GetComparisonRequest{ParticipantID: "unknown"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found participant"), err)
}

func Test_dashboardDomain_GetStatistic(t *testing.T) {
	ctx := xcontext.WithShop(testutil.MockContext(), testutil.Shop)
	challenge := testutil.SampleChallenge(ctx, nil)
	sampleResults(ctx, challenge.ID)

	resp, err := newTestDashboardDomain(nil).GetStatistic(ctx, &model.GetStatisticRequest{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)
	require.Equal(t, &model.GetStatisticResponse{
		Total:                5,
		NotStarted:           1,
		Completed:            4,
		CompletionRate:       80,
		AvgWeightLossPercent: 7.5,
		TotalWeightLoss:      50,
	}, resp)
}

func Test_dashboardDomain_RefreshOrders(t *testing.T) {
	ctx := xcontext.WithShop(testutil.MockContext(), testutil.Shop)
	challenge := testutil.SampleChallenge(ctx, nil)
	found := testutil.SampleParticipant(ctx, &entity.Participant{ChallengeID: challenge.ID, Email: "found@example.com"})
	testutil.SampleParticipant(ctx, &entity.Participant{ChallengeID: challenge.ID, Email: "missing@example.com"})

	endpoint := &mocks.ShopifyEndpoint{}
	endpoint.On("FindCustomerByEmail", mock.Anything, testutil.Shop, "shpat_token", "found@example.com").
		Return(shopify.Customer{ID: 7, OrdersCount: 2, TotalSpent: 80}, nil)
	endpoint.On("FindCustomerByEmail", mock.Anything, testutil.Shop, "shpat_token", "missing@example.com").
		Return(nil, shopify.ErrCustomerNotFound)

	d := newTestDashboardDomain(endpoint)

	// The shop has not installed the app yet.
	_, err := d.RefreshOrders(ctx, &model.RefreshOrdersRequest{ChallengeID: challenge.ID})
	require.Equal(t, errorx.New(errorx.Unavailable, "The app is not installed on this shop"), err)

	require.NoError(t, repository.NewShopSessionRepository().Upsert(ctx, &entity.ShopSession{
		Base:        entity.Base{ID: uuid.NewString()},
		Shop:        testutil.Shop,
		AccessToken: "shpat_token",
	}))

	resp, err := d.RefreshOrders(ctx, &model.RefreshOrdersRequest{ChallengeID: challenge.ID})
	require.NoError(t, err)
	require.Equal(t, &model.RefreshOrdersResponse{Updated: 1, NotFound: 1}, resp)

	participant, err := repository.NewParticipantRepository().GetByID(ctx, found.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), participant.OrdersCount.Int64)
	require.Equal(t, 80.0, participant.TotalSpent.Float64)

	resp, err = d.RefreshOrders(ctx, &model.RefreshOrdersRequest{ParticipantID: found.ID})
	require.NoError(t, err)
	require.Equal(t, &model.RefreshOrdersResponse{Updated: 1}, resp)

	_, err = d.RefreshOrders(ctx, &model.RefreshOrdersRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Either participant id or challenge id is required"), err)
}
