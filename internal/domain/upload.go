package domain

import (
	"context"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/storage"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type UploadDomain interface {
	GetUploadTarget(context.Context, *model.GetUploadTargetRequest) (*model.GetUploadTargetResponse, error)
	GetUploadTargets(context.Context, *model.GetUploadTargetsRequest) (*model.GetUploadTargetsResponse, error)
}

type uploadDomain struct {
	storage storage.Adapter
}

func NewUploadDomain(storageAdapter storage.Adapter) *uploadDomain {
	return &uploadDomain{storage: storageAdapter}
}

func (d *uploadDomain) GetUploadTarget(
	ctx context.Context, req *model.GetUploadTargetRequest,
) (*model.GetUploadTargetResponse, error) {
	if xcontext.RequestShopper(ctx).CustomerID == "" {
		return nil, errorx.New(errorx.Unauthenticated, ReasonLoginRequired)
	}

	submissionID, err := normalizeSubmissionID(req.SubmissionID)
	if err != nil {
		return nil, err
	}

	return d.issue(ctx, submissionID, req.UploadFile)
}

func (d *uploadDomain) GetUploadTargets(
	ctx context.Context, req *model.GetUploadTargetsRequest,
) (*model.GetUploadTargetsResponse, error) {
	if xcontext.RequestShopper(ctx).CustomerID == "" {
		return nil, errorx.New(errorx.Unauthenticated, ReasonLoginRequired)
	}

	submissionID, err := normalizeSubmissionID(req.SubmissionID)
	if err != nil {
		return nil, err
	}

	if len(req.Files) == 0 || len(req.Files) > entity.PhotoCount {
		return nil, errorx.NewField("files", "Between 1 and %d files are required", entity.PhotoCount)
	}

	// All files are validated before any target is issued.
	for _, file := range req.Files {
		if err := d.storage.Validate(uploadRequest(submissionID, file)); err != nil {
			return nil, err
		}
	}

	targets := make([]model.GetUploadTargetResponse, len(req.Files))
	g, gctx := errgroup.WithContext(ctx)
	for i := range req.Files {
		i := i
		g.Go(func() error {
			target, err := d.issue(gctx, submissionID, req.Files[i])
			if err != nil {
				return err
			}

			targets[i] = *target
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.GetUploadTargetsResponse{SubmissionID: submissionID, Targets: targets}, nil
}

func (d *uploadDomain) issue(
	ctx context.Context, submissionID string, file model.UploadFile,
) (*model.GetUploadTargetResponse, error) {
	resp, err := d.storage.IssueUploadTarget(ctx, uploadRequest(submissionID, file))
	if err != nil {
		return nil, err
	}

	common.PromCounters[common.UploadTargetTotal].WithLabelValues(d.storage.Name()).Inc()

	return &model.GetUploadTargetResponse{
		SubmissionID: submissionID,
		Order:        file.Order,
		UploadTarget: resp.Target,
		PublicURL:    resp.PublicURL,
	}, nil
}

// normalizeSubmissionID generates a new submission id for the first upload of
// a form.
func normalizeSubmissionID(id string) (string, error) {
	if id == "" {
		return uuid.NewString(), nil
	}

	if _, err := uuid.Parse(id); err != nil {
		return "", errorx.NewField("submission_id", "Invalid submission id")
	}

	return id, nil
}

func uploadRequest(submissionID string, file model.UploadFile) *storage.UploadRequest {
	return &storage.UploadRequest{
		FileName:     file.FileName,
		FileType:     file.FileType,
		FileSize:     file.FileSize,
		SubmissionID: submissionID,
		Order:        file.Order,
	}
}
