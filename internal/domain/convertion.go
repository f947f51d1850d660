package domain

import (
	"database/sql"
	"time"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(defaultTimeLayout)
}

func formatNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return formatTime(t.Time)
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return common.Ptr(f.Float64)
}

func convertChallenge(challenge *entity.Challenge) model.Challenge {
	if challenge == nil {
		return model.Challenge{}
	}

	return model.Challenge{
		ID:          challenge.ID,
		Shop:        challenge.Shop,
		Name:        challenge.Name,
		Description: challenge.Description,
		StartDate:   formatTime(challenge.StartDate),
		EndDate:     formatTime(challenge.EndDate),
		IsActive:    challenge.IsActive,
		CreatedAt:   formatTime(challenge.CreatedAt),
		UpdatedAt:   formatTime(challenge.UpdatedAt),
	}
}

func convertParticipant(participant *entity.Participant) model.Participant {
	if participant == nil {
		return model.Participant{}
	}

	startWeight := nullFloat(participant.StartWeight)
	endWeight := nullFloat(participant.EndWeight)
	loss, percent := common.WeightLoss(startWeight, endWeight)

	var ordersCount *int64
	if participant.OrdersCount.Valid {
		ordersCount = common.Ptr(participant.OrdersCount.Int64)
	}

	return model.Participant{
		ID:                participant.ID,
		ChallengeID:       participant.ChallengeID,
		CustomerID:        participant.CustomerID,
		Email:             participant.Email,
		FirstName:         participant.FirstName.String,
		LastName:          participant.LastName.String,
		Status:            string(participant.Status),
		StartWeight:       startWeight,
		EndWeight:         endWeight,
		WeightLoss:        loss,
		WeightLossPercent: percent,
		StartedAt:         formatNullTime(participant.StartedAt),
		CompletedAt:       formatNullTime(participant.CompletedAt),
		OrdersCount:       ordersCount,
		TotalSpent:        nullFloat(participant.TotalSpent),
		OrdersSyncedAt:    formatNullTime(participant.OrdersSyncedAt),
		CreatedAt:         formatTime(participant.CreatedAt),
	}
}

func convertPhoto(photo *entity.Photo) model.Photo {
	return model.Photo{
		Order:       photo.Order,
		Orientation: string(photo.Orientation),
		URL:         photo.URL,
		FileName:    photo.FileName,
		FileSize:    photo.FileSize,
		MimeType:    photo.MimeType,
	}
}

func convertSubmission(submission *entity.Submission, photos []entity.Photo) *model.Submission {
	if submission == nil {
		return nil
	}

	clientPhotos := []model.Photo{}
	for i := range photos {
		clientPhotos = append(clientPhotos, convertPhoto(&photos[i]))
	}

	return &model.Submission{
		ID:          submission.ID,
		Type:        string(submission.Type),
		Weight:      submission.Weight,
		SubmittedAt: formatTime(submission.SubmittedAt),
		Notes:       submission.Notes.String,
		Photos:      clientPhotos,
	}
}

func convertCustomization(settings *entity.CustomizationSettings) model.Customization {
	return model.Customization{
		Title:            settings.Title,
		Description:      settings.Description,
		StartButtonLabel: settings.StartButtonLabel,
		EndButtonLabel:   settings.EndButtonLabel,
		EmailLabel:       settings.EmailLabel,
		WeightLabel:      settings.WeightLabel,
		FrontPhotoLabel:  settings.FrontPhotoLabel,
		SidePhotoLabel:   settings.SidePhotoLabel,
		BackPhotoLabel:   settings.BackPhotoLabel,
		SubmitLabel:      settings.SubmitLabel,
		SuccessMessage:   settings.SuccessMessage,
		PrimaryColor:     settings.PrimaryColor,
		SecondaryColor:   settings.SecondaryColor,
		BackgroundColor:  settings.BackgroundColor,
		TextColor:        settings.TextColor,
		ButtonTextColor:  settings.ButtonTextColor,
	}
}
