package repository

import (
	"testing"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_submissionRepository_Exists(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewSubmissionRepository()
	challenge := testutil.SampleChallenge(ctx, nil)
	participant := testutil.SampleParticipant(ctx, &entity.Participant{ChallengeID: challenge.ID})

	exists, err := repo.Exists(ctx, participant.ID, entity.SubmissionStart)
	require.NoError(t, err)
	require.False(t, exists)

	submission := testutil.SampleSubmission(ctx, &entity.Submission{ParticipantID: participant.ID})

	exists, err = repo.Exists(ctx, participant.ID, entity.SubmissionStart)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.Exists(ctx, participant.ID, entity.SubmissionEnd)
	require.NoError(t, err)
	require.False(t, exists)

	photos, err := NewPhotoRepository().GetBySubmissionIDs(ctx, []string{submission.ID})
	require.NoError(t, err)
	require.Len(t, photos, 3)
	for i, photo := range photos {
		require.Equal(t, i+1, photo.Order)
		require.Equal(t, entity.OrientationByOrder[i+1], photo.Orientation)
	}
}

func Test_photoRepository_UniqueOrder(t *testing.T) {
	ctx := testutil.MockContext()
	challenge := testutil.SampleChallenge(ctx, nil)
	participant := testutil.SampleParticipant(ctx, &entity.Participant{ChallengeID: challenge.ID})
	submission := testutil.SampleSubmission(ctx, &entity.Submission{ParticipantID: participant.ID})

	err := NewPhotoRepository().BulkInsert(ctx, []entity.Photo{{
		Base:         entity.Base{ID: "duplicated"},
		SubmissionID: submission.ID,
		Order:        1,
		Orientation:  entity.PhotoFront,
	}})
	require.Error(t, err)
}
