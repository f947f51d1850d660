package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/storage"
)

// MockStorage validates like the real adapters and, unless overridden, accepts
// every object under https://cdn.example.com/<submission>/<order>-.
type MockStorage struct {
	Rules storage.Rules

	IssueUploadTargetFunc func(context.Context, *storage.UploadRequest) (*storage.UploadResponse, error)
	FinalizeFunc          func(context.Context, *storage.UploadedObject) error
}

func NewMockStorage() *MockStorage {
	cfg := MockConfigs()
	return &MockStorage{
		Rules: storage.Rules{MaxSize: cfg.Storage.MaxSize, AllowedTypes: cfg.Storage.AllowedTypes},
	}
}

func PhotoURL(submissionID string, order int) string {
	return fmt.Sprintf("https://cdn.example.com/%s/%d-photo.jpg", submissionID, order)
}

func (m *MockStorage) Name() string {
	return "mock"
}

func (m *MockStorage) Validate(req *storage.UploadRequest) error {
	return m.Rules.Validate(req)
}

func (m *MockStorage) IssueUploadTarget(
	ctx context.Context, req *storage.UploadRequest,
) (*storage.UploadResponse, error) {
	if m.IssueUploadTargetFunc != nil {
		return m.IssueUploadTargetFunc(ctx, req)
	}

	if err := m.Validate(req); err != nil {
		return nil, err
	}

	url := PhotoURL(req.SubmissionID, req.Order)
	return &storage.UploadResponse{
		Target: storage.UploadTarget{
			URL:       url + "?signature=mock",
			Method:    "PUT",
			Headers:   map[string]string{"Content-Type": req.FileType},
			ExpiresAt: time.Now().Add(time.Minute),
		},
		PublicURL: url,
		Key:       fmt.Sprintf("%s/%d-photo.jpg", req.SubmissionID, req.Order),
	}, nil
}

func (m *MockStorage) Finalize(ctx context.Context, obj *storage.UploadedObject) error {
	if m.FinalizeFunc != nil {
		return m.FinalizeFunc(ctx, obj)
	}

	if obj.URL != PhotoURL(obj.SubmissionID, obj.Order) {
		return errorx.New(errorx.InvalidFile, "Photo %d does not belong to this submission", obj.Order)
	}

	return nil
}
