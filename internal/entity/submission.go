package entity

import (
	"database/sql"
	"time"

	"github.com/fitchallenge/backend/pkg/enum"
)

type SubmissionType string

var (
	SubmissionStart = enum.New(SubmissionType("START"))
	SubmissionEnd   = enum.New(SubmissionType("END"))
)

// Submission is never updated after creation.
type Submission struct {
	Base

	ParticipantID string      `gorm:"size:36;not null;index"`
	Participant   Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE"`

	Type        SubmissionType `gorm:"size:8"`
	Weight      float64
	SubmittedAt time.Time
	Notes       sql.NullString `gorm:"type:text"`
}
