package entity

import (
	"database/sql"

	"github.com/fitchallenge/backend/pkg/enum"
)

type ParticipantStatus string

var (
	ParticipantNotStarted = enum.New(ParticipantStatus("NOT_STARTED"))
	ParticipantInProgress = enum.New(ParticipantStatus("IN_PROGRESS"))
	ParticipantCompleted  = enum.New(ParticipantStatus("COMPLETED"))
)

type Participant struct {
	Base

	ChallengeID string    `gorm:"size:36;not null;uniqueIndex:idx_participants_challenge_customer"`
	Challenge   Challenge `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE"`
	CustomerID  string    `gorm:"size:64;not null;uniqueIndex:idx_participants_challenge_customer"`

	Shop      string `gorm:"size:255;index"`
	Email     string `gorm:"size:320"`
	FirstName sql.NullString
	LastName  sql.NullString

	Status      ParticipantStatus `gorm:"size:16;index"`
	StartWeight sql.NullFloat64
	EndWeight   sql.NullFloat64
	StartedAt   sql.NullTime
	CompletedAt sql.NullTime

	// Cached data of the commerce platform, only used for display.
	CommerceCustomerID sql.NullString
	OrdersCount        sql.NullInt64
	TotalSpent         sql.NullFloat64
	OrdersSyncedAt     sql.NullTime
}
