package domain

import (
	"context"
	"testing"
	"time"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestEligibilityDomain() *eligibilityDomain {
	return NewEligibilityDomain(
		repository.NewChallengeRepository(),
		repository.NewParticipantRepository(),
		repository.NewSubmissionRepository(),
	)
}

func Test_eligibilityDomain_GetActiveChallenge(t *testing.T) {
	now := time.Now().UTC()
	day := 24 * time.Hour

	tests := []struct {
		name       string
		challenges []entity.Challenge
		want       string
	}{
		{
			name: "no challenge",
		},
		{
			name: "inactive and finished challenges are ignored",
			challenges: []entity.Challenge{
				{Base: entity.Base{ID: "finished"}, StartDate: now.Add(-30 * day), EndDate: now.Add(-day)},
				{Base: entity.Base{ID: "inactive"}, StartDate: now.Add(-day), EndDate: now.Add(day)},
			},
		},
		{
			name: "running challenge",
			challenges: []entity.Challenge{
				{Base: entity.Base{ID: "running"}, StartDate: now.Add(-day), EndDate: now.Add(29 * day)},
			},
			want: "running",
		},
		{
			name: "latest started wins when overlapping",
			challenges: []entity.Challenge{
				{Base: entity.Base{ID: "older"}, StartDate: now.Add(-10 * day), EndDate: now.Add(10 * day)},
				{Base: entity.Base{ID: "newer"}, StartDate: now.Add(-2 * day), EndDate: now.Add(5 * day)},
			},
			want: "newer",
		},
		{
			name: "running beats upcoming",
			challenges: []entity.Challenge{
				{Base: entity.Base{ID: "upcoming"}, StartDate: now.Add(day), EndDate: now.Add(10 * day)},
				{Base: entity.Base{ID: "running"}, StartDate: now.Add(-day), EndDate: now.Add(day)},
			},
			want: "running",
		},
		{
			name: "earliest upcoming when nothing runs",
			challenges: []entity.Challenge{
				{Base: entity.Base{ID: "later"}, StartDate: now.Add(10 * day), EndDate: now.Add(20 * day)},
				{Base: entity.Base{ID: "sooner"}, StartDate: now.Add(2 * day), EndDate: now.Add(20 * day)},
			},
			want: "sooner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			for _, c := range tt.challenges {
				c := c
				created := testutil.SampleChallenge(ctx, &c)
				if c.ID == "inactive" {
					require.NoError(t, repository.NewChallengeRepository().UpdateByID(
						ctx, created.ID, map[string]any{"is_active": false}))
				}
			}

			challenge, err := newTestEligibilityDomain().GetActiveChallenge(ctx, testutil.Shop)
			require.NoError(t, err)

			if tt.want == "" {
				require.Nil(t, challenge)
				return
			}

			require.NotNil(t, challenge)
			require.Equal(t, tt.want, challenge.ID)
		})
	}
}

func Test_eligibilityDomain_OtherShop(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.SampleChallenge(ctx, &entity.Challenge{Shop: "other.myshopify.com"})

	d := newTestEligibilityDomain()
	challenge, err := d.GetActiveChallenge(ctx, testutil.Shop)
	require.NoError(t, err)
	require.Nil(t, challenge)
}

func Test_eligibilityDomain_NoActiveChallenge(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestEligibilityDomain()

	canStart, err := d.CanStart(ctx, testutil.Shop, testutil.CustomerID)
	require.NoError(t, err)
	require.Equal(t, model.Eligibility{Reason: ReasonNoActiveChallenge}, canStart)

	canEnd, err := d.CanEnd(ctx, testutil.Shop, testutil.CustomerID)
	require.NoError(t, err)
	require.Equal(t, model.Eligibility{Reason: ReasonNoActiveChallenge}, canEnd)

	participant, err := d.GetOrCreateParticipant(ctx, testutil.Shop, ParticipantIdentity{
		CustomerID: testutil.CustomerID,
		Email:      "jane@example.com",
	})
	require.NoError(t, err)
	require.Nil(t, participant)
}

func Test_eligibilityDomain_CanStart(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, ctx context.Context, challengeID string)
		want  model.Eligibility
	}{
		{
			name: "first visit",
			want: model.Eligibility{Eligible: true},
		},
		{
			name: "participant not started yet",
			setup: func(t *testing.T, ctx context.Context, challengeID string) {
				testutil.SampleParticipant(ctx, &entity.Participant{
					ChallengeID: challengeID,
					CustomerID:  testutil.CustomerID,
				})
			},
			want: model.Eligibility{Eligible: true},
		},
		{
			name: "participant in progress",
			setup: func(t *testing.T, ctx context.Context, challengeID string) {
				participant := testutil.SampleParticipant(ctx, &entity.Participant{
					ChallengeID: challengeID,
					CustomerID:  testutil.CustomerID,
					Status:      entity.ParticipantInProgress,
				})
				testutil.SampleSubmission(ctx, &entity.Submission{ParticipantID: participant.ID})
			},
			want: model.Eligibility{Reason: ReasonAlreadyStarted},
		},
		{
			name: "not started but an orphaned start submission exists",
			setup: func(t *testing.T, ctx context.Context, challengeID string) {
				participant := testutil.SampleParticipant(ctx, &entity.Participant{
					ChallengeID: challengeID,
					CustomerID:  testutil.CustomerID,
				})
				testutil.SampleSubmission(ctx, &entity.Submission{ParticipantID: participant.ID})
			},
			want: model.Eligibility{Reason: ReasonAlreadyStarted},
		},
		{
			name: "in progress without any submission",
			setup: func(t *testing.T, ctx context.Context, challengeID string) {
				testutil.SampleParticipant(ctx, &entity.Participant{
					ChallengeID: challengeID,
					CustomerID:  testutil.CustomerID,
					Status:      entity.ParticipantInProgress,
				})
			},
			want: model.Eligibility{Reason: ReasonAlreadyStarted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			challenge := testutil.SampleChallenge(ctx, nil)
			if tt.setup != nil {
				tt.setup(t, ctx, challenge.ID)
			}

			got, err := newTestEligibilityDomain().CanStart(ctx, testutil.Shop, testutil.CustomerID)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_eligibilityDomain_CanEnd(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, ctx context.Context, challengeID string)
		want  model.Eligibility
	}{
		{
			name: "no participant",
			want: model.Eligibility{Reason: ReasonNotStarted},
		},
		{
			name: "participant without start submission",
			setup: func(t *testing.T, ctx context.Context, challengeID string) {
				testutil.SampleParticipant(ctx, &entity.Participant{
					ChallengeID: challengeID,
					CustomerID:  testutil.CustomerID,
				})
			},
			want: model.Eligibility{Reason: ReasonStartFormMissing},
		},
		{
			name: "started",
			setup: func(t *testing.T, ctx context.Context, challengeID string) {
				participant := testutil.SampleParticipant(ctx, &entity.Participant{
					ChallengeID: challengeID,
					CustomerID:  testutil.CustomerID,
					Status:      entity.ParticipantInProgress,
				})
				testutil.SampleSubmission(ctx, &entity.Submission{ParticipantID: participant.ID})
			},
			want: model.Eligibility{Eligible: true},
		},
		{
			name: "completed",
			setup: func(t *testing.T, ctx context.Context, challengeID string) {
				participant := testutil.SampleParticipant(ctx, &entity.Participant{
					ChallengeID: challengeID,
					CustomerID:  testutil.CustomerID,
					Status:      entity.ParticipantCompleted,
				})
				testutil.SampleSubmission(ctx, &entity.Submission{ParticipantID: participant.ID})
				testutil.SampleSubmission(ctx, &entity.Submission{
					ParticipantID: participant.ID,
					Type:          entity.SubmissionEnd,
				})
			},
			want: model.Eligibility{Reason: ReasonAlreadyCompleted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			challenge := testutil.SampleChallenge(ctx, nil)
			if tt.setup != nil {
				tt.setup(t, ctx, challenge.ID)
			}

			got, err := newTestEligibilityDomain().CanEnd(ctx, testutil.Shop, testutil.CustomerID)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_eligibilityDomain_GetOrCreateParticipant(t *testing.T) {
	ctx := testutil.MockContext()
	challenge := testutil.SampleChallenge(ctx, nil)
	d := newTestEligibilityDomain()

	first, err := d.GetOrCreateParticipant(ctx, testutil.Shop, ParticipantIdentity{
		CustomerID: testutil.CustomerID,
		Email:      "jane@example.com",
		FirstName:  "Jane",
	})
	require.NoError(t, err)
	require.NotNil(t, first)
	require.Equal(t, challenge.ID, first.ChallengeID)
	require.Equal(t, entity.ParticipantNotStarted, first.Status)
	require.Equal(t, "Jane", first.FirstName.String)
	require.False(t, first.LastName.Valid)

	// The second call neither creates another row nor overwrites the stored
	// identity.
	second, err := d.GetOrCreateParticipant(ctx, testutil.Shop, ParticipantIdentity{
		CustomerID: testutil.CustomerID,
		Email:      "other@example.com",
		FirstName:  "Other",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "jane@example.com", second.Email)
	require.Equal(t, "Jane", second.FirstName.String)

	count, err := repository.NewParticipantRepository().Count(ctx, repository.GetListParticipantFilter{
		ChallengeID: challenge.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_eligibilityDomain_GetOrCreateParticipant_Race(t *testing.T) {
	ctx := testutil.MockContext()
	challenge := testutil.SampleChallenge(ctx, nil)
	d := newTestEligibilityDomain()

	// The participant is created by another request between the lookup and
	// the creation.
	d.participantRepo = &racingParticipantRepository{
		ParticipantRepository: repository.NewParticipantRepository(),
		onCreate: func() {
			testutil.SampleParticipant(ctx, &entity.Participant{
				Base:        entity.Base{ID: "winner"},
				ChallengeID: challenge.ID,
				CustomerID:  testutil.CustomerID,
			})
		},
	}

	participant, err := d.GetOrCreateParticipant(ctx, testutil.Shop, ParticipantIdentity{
		CustomerID: testutil.CustomerID,
		Email:      "jane@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "winner", participant.ID)
}
