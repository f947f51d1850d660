package model

type GetListParticipantRequest struct {
	ChallengeID string `json:"challenge_id" form:"challenge_id"`
	Status      string `json:"status" form:"status"`
	SortBy      string `json:"sort_by" form:"sort_by"`
	Order       string `json:"order" form:"order"`
	Offset      int    `json:"offset" form:"offset"`
	Limit       int    `json:"limit" form:"limit"`
}

type GetListParticipantResponse struct {
	Participants []Participant `json:"participants"`
	Total        int64         `json:"total"`
}

type LeaderboardEntry struct {
	Rank        int         `json:"rank"`
	Participant Participant `json:"participant"`
}

type GetLeaderboardRequest struct {
	ChallengeID string `json:"challenge_id" form:"challenge_id"`
	Limit       int    `json:"limit" form:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type GetComparisonRequest struct {
	ParticipantID string `json:"participant_id" form:"participant_id"`
}

type GetComparisonResponse struct {
	Participant Participant `json:"participant"`
	Before      *Submission `json:"before"`
	After       *Submission `json:"after"`
}

type GetStatisticRequest struct {
	ChallengeID string `json:"challenge_id" form:"challenge_id"`
}

type GetStatisticResponse struct {
	Total                int64   `json:"total"`
	NotStarted           int64   `json:"not_started"`
	InProgress           int64   `json:"in_progress"`
	Completed            int64   `json:"completed"`
	CompletionRate       float64 `json:"completion_rate"`
	AvgWeightLossPercent float64 `json:"avg_weight_loss_percent"`
	TotalWeightLoss      float64 `json:"total_weight_loss"`
	TotalSpent           float64 `json:"total_spent"`
}

type RefreshOrdersRequest struct {
	ParticipantID string `json:"participant_id"`
	ChallengeID   string `json:"challenge_id"`
}

type RefreshOrdersResponse struct {
	Updated  int `json:"updated"`
	NotFound int `json:"not_found"`
	Failed   int `json:"failed"`
}
