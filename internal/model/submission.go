package model

type GetStatusRequest struct{}

type GetStatusResponse struct {
	Challenge *Challenge  `json:"challenge"`
	Status    string      `json:"status,omitempty"`
	CanStart  Eligibility `json:"can_start"`
	CanEnd    Eligibility `json:"can_end"`
}

type SubmittedPhoto struct {
	Order    int    `json:"order"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
}

type SubmitRequest struct {
	// SubmissionID is the id returned when the upload targets were issued.
	SubmissionID string           `json:"submission_id"`
	Email        string           `json:"email"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Weight       float64          `json:"weight"`
	Notes        string           `json:"notes"`
	Photos       []SubmittedPhoto `json:"photos"`
}

type SubmitResponse struct {
	SubmissionID string `json:"submission_id"`
	Status       string `json:"status"`
}

type SubmitStartRequest SubmitRequest
type SubmitStartResponse SubmitResponse

type SubmitEndRequest SubmitRequest
type SubmitEndResponse SubmitResponse
