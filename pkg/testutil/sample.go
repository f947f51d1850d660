package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"time"

	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
)

// SampleChallenge creates a challenge of the fixture shop which is running
// now. The sample can be overwritten by non-zero fields of init.
func SampleChallenge(ctx context.Context, init *entity.Challenge) entity.Challenge {
	now := time.Now().UTC()
	sample := &entity.Challenge{
		Base:        entity.Base{ID: uuid.NewString()},
		Shop:        Shop,
		Name:        "Summer challenge",
		Description: "Lose weight before summer",
		StartDate:   now.Add(-24 * time.Hour),
		EndDate:     now.Add(29 * 24 * time.Hour),
		IsActive:    true,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	mustCreate(ctx, sample)
	return *sample
}

// SampleParticipant creates a NOT_STARTED participant of the challenge.
func SampleParticipant(ctx context.Context, init *entity.Participant) entity.Participant {
	sample := &entity.Participant{
		Base:       entity.Base{ID: uuid.NewString()},
		CustomerID: uuid.NewString(),
		Shop:       Shop,
		Email:      "jane@example.com",
		Status:     entity.ParticipantNotStarted,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	mustCreate(ctx, sample)
	return *sample
}

// SampleSubmission creates a submission with its three photos.
func SampleSubmission(ctx context.Context, init *entity.Submission) entity.Submission {
	sample := &entity.Submission{
		Base:        entity.Base{ID: uuid.NewString()},
		Type:        entity.SubmissionStart,
		Weight:      200,
		SubmittedAt: time.Now().UTC(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	mustCreate(ctx, sample)

	for order := 1; order <= 3; order++ {
		mustCreate(ctx, &entity.Photo{
			Base:         entity.Base{ID: uuid.NewString()},
			SubmissionID: sample.ID,
			Order:        order,
			Orientation:  entity.OrientationByOrder[order],
			URL:          fmt.Sprintf("https://cdn.example.com/%s/%d.jpg", sample.ID, order),
			FileName:     "photo.jpg",
			FileSize:     1024,
			MimeType:     "image/jpeg",
		})
	}

	return *sample
}

// CompletedParticipant creates a participant who submitted both forms.
func CompletedParticipant(
	ctx context.Context, challengeID, email string, start, end float64, completedAt time.Time,
) entity.Participant {
	participant := SampleParticipant(ctx, &entity.Participant{
		ChallengeID: challengeID,
		Email:       email,
		Status:      entity.ParticipantCompleted,
		StartWeight: sql.NullFloat64{Valid: true, Float64: start},
		EndWeight:   sql.NullFloat64{Valid: true, Float64: end},
		StartedAt:   sql.NullTime{Valid: true, Time: completedAt.Add(-30 * 24 * time.Hour)},
		CompletedAt: sql.NullTime{Valid: true, Time: completedAt},
	})

	SampleSubmission(ctx, &entity.Submission{
		ParticipantID: participant.ID,
		Type:          entity.SubmissionStart,
		Weight:        start,
		SubmittedAt:   participant.StartedAt.Time,
	})

	SampleSubmission(ctx, &entity.Submission{
		ParticipantID: participant.ID,
		Type:          entity.SubmissionEnd,
		Weight:        end,
		SubmittedAt:   completedAt,
	})

	return participant
}

func mustCreate(ctx context.Context, v any) {
	if err := xcontext.DB(ctx).Create(v).Error; err != nil {
		panic(err)
	}
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
