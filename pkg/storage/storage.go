package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/fitchallenge/backend/pkg/errorx"
	"golang.org/x/exp/slices"
)

// Adapter hands the browser a direct-upload target so the file bytes never go
// through the application server.
type Adapter interface {
	// Name returns the backend name (s3 or media).
	Name() string

	// Validate checks the file metadata before any upload target is issued.
	Validate(*UploadRequest) error

	// IssueUploadTarget returns where and how the browser uploads the file,
	// and the public URL the file will be served from.
	IssueUploadTarget(context.Context, *UploadRequest) (*UploadResponse, error)

	// Finalize verifies an uploaded object belongs to the given submission and
	// order, and that it still satisfies the upload rules.
	Finalize(context.Context, *UploadedObject) error
}

type UploadRequest struct {
	FileName     string
	FileType     string
	FileSize     int64
	SubmissionID string
	Order        int
}

type UploadTarget struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Fields    map[string]string `json:"fields,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

type UploadResponse struct {
	Target    UploadTarget
	PublicURL string
	Key       string
}

type UploadedObject struct {
	URL          string
	SubmissionID string
	Order        int
}

const (
	MinOrder = 1
	MaxOrder = 3
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Rules is the validation shared by all adapters.
type Rules struct {
	MaxSize      int64
	AllowedTypes []string
}

func (r Rules) Validate(req *UploadRequest) error {
	if req.FileName == "" {
		return errorx.NewField("file_name", "File name is required")
	}

	if !slices.Contains(r.AllowedTypes, req.FileType) {
		return errorx.NewField("file_type", "File type %s is not allowed", req.FileType)
	}

	if req.FileSize <= 0 {
		return errorx.NewField("file_size", "File is empty")
	}

	if req.FileSize > r.MaxSize {
		return errorx.NewField("file_size", "File must be at most %dMB", r.MaxSize>>20)
	}

	if req.Order < MinOrder || req.Order > MaxOrder {
		return errorx.NewField("order", "Photo order must be between %d and %d", MinOrder, MaxOrder)
	}

	if req.SubmissionID == "" {
		return errorx.NewField("submission_id", "Submission id is required")
	}

	return nil
}

// objectPrefix is the part of the object key which binds the object to a
// submission and a photo order.
func objectPrefix(submissionID string, order int) string {
	return fmt.Sprintf("%s/%d-", submissionID, order)
}

func extension(fileType string) string {
	if ext, ok := extensions[fileType]; ok {
		return ext
	}
	return ""
}
