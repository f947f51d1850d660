package model

import "github.com/fitchallenge/backend/pkg/storage"

type UploadFile struct {
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
	Order    int    `json:"order"`
}

type GetUploadTargetRequest struct {
	SubmissionID string `json:"submission_id"`
	UploadFile
}

type GetUploadTargetResponse struct {
	SubmissionID string               `json:"submission_id"`
	Order        int                  `json:"order"`
	UploadTarget storage.UploadTarget `json:"upload_target"`
	PublicURL    string               `json:"public_url"`
}

type GetUploadTargetsRequest struct {
	SubmissionID string       `json:"submission_id"`
	Files        []UploadFile `json:"files"`
}

type GetUploadTargetsResponse struct {
	SubmissionID string                    `json:"submission_id"`
	Targets      []GetUploadTargetResponse `json:"targets"`
}
