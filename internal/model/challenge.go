package model

import "time"

type CreateChallengeRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `json:"is_active"`
}

type CreateChallengeResponse struct {
	ID string `json:"id"`
}

type GetChallengeRequest struct {
	ID string `json:"id" form:"id"`
}

type GetChallengeResponse struct {
	Challenge Challenge `json:"challenge"`
}

type GetListChallengeRequest struct{}

type GetListChallengeResponse struct {
	Challenges []Challenge `json:"challenges"`
}

type UpdateChallengeRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    *bool     `json:"is_active"`
}

type UpdateChallengeResponse struct{}

type DeleteChallengeRequest struct {
	ID string `json:"id"`
}

type DeleteChallengeResponse struct{}

type SetActiveChallengeRequest struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

type SetActiveChallengeResponse struct{}
