package domain

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/fitchallenge/backend/internal/common"
	"github.com/fitchallenge/backend/internal/entity"
	"github.com/fitchallenge/backend/internal/model"
	"github.com/fitchallenge/backend/internal/repository"
	"github.com/fitchallenge/backend/pkg/api/shopify"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/storage"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ReasonLoginRequired = "You must log in first"

type SubmissionDomain interface {
	GetStatus(context.Context, *model.GetStatusRequest) (*model.GetStatusResponse, error)
	SubmitStart(context.Context, *model.SubmitStartRequest) (*model.SubmitStartResponse, error)
	SubmitEnd(context.Context, *model.SubmitEndRequest) (*model.SubmitEndResponse, error)
}

type submissionDomain struct {
	eligibility     *eligibilityDomain
	participantRepo repository.ParticipantRepository
	submissionRepo  repository.SubmissionRepository
	photoRepo       repository.PhotoRepository
	storage         storage.Adapter
	orderSyncer     *orderSyncer
}

func NewSubmissionDomain(
	eligibility *eligibilityDomain,
	participantRepo repository.ParticipantRepository,
	submissionRepo repository.SubmissionRepository,
	photoRepo repository.PhotoRepository,
	shopSessionRepo repository.ShopSessionRepository,
	storageAdapter storage.Adapter,
	shopifyEndpoint shopify.IEndpoint,
) *submissionDomain {
	return &submissionDomain{
		eligibility:     eligibility,
		participantRepo: participantRepo,
		submissionRepo:  submissionRepo,
		photoRepo:       photoRepo,
		storage:         storageAdapter,
		orderSyncer:     newOrderSyncer(participantRepo, shopSessionRepo, shopifyEndpoint),
	}
}

func (d *submissionDomain) GetStatus(
	ctx context.Context, req *model.GetStatusRequest,
) (*model.GetStatusResponse, error) {
	shopper := xcontext.RequestShopper(ctx)
	if shopper.Shop == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Unknown shop")
	}

	challenge, err := d.eligibility.GetActiveChallenge(ctx, shopper.Shop)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetStatusResponse{}
	if challenge != nil {
		clientChallenge := convertChallenge(challenge)
		resp.Challenge = &clientChallenge
	}

	if shopper.CustomerID == "" {
		resp.CanStart = notEligible(ReasonLoginRequired)
		resp.CanEnd = notEligible(ReasonLoginRequired)
		return resp, nil
	}

	if resp.CanStart, err = d.eligibility.canStart(ctx, challenge, shopper.CustomerID); err != nil {
		return nil, err
	}

	if resp.CanEnd, err = d.eligibility.canEnd(ctx, challenge, shopper.CustomerID); err != nil {
		return nil, err
	}

	if challenge != nil {
		participant, err := d.participantRepo.Get(ctx, challenge.ID, shopper.CustomerID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
				return nil, errorx.Unknown
			}
		} else {
			resp.Status = string(participant.Status)
		}
	}

	return resp, nil
}

func (d *submissionDomain) SubmitStart(
	ctx context.Context, req *model.SubmitStartRequest,
) (*model.SubmitStartResponse, error) {
	resp, err := d.submit(ctx, (*model.SubmitRequest)(req), entity.SubmissionStart)
	if err != nil {
		return nil, err
	}

	return (*model.SubmitStartResponse)(resp), nil
}

func (d *submissionDomain) SubmitEnd(
	ctx context.Context, req *model.SubmitEndRequest,
) (*model.SubmitEndResponse, error) {
	resp, err := d.submit(ctx, (*model.SubmitRequest)(req), entity.SubmissionEnd)
	if err != nil {
		return nil, err
	}

	return (*model.SubmitEndResponse)(resp), nil
}

func (d *submissionDomain) submit(
	ctx context.Context, req *model.SubmitRequest, submissionType entity.SubmissionType,
) (*model.SubmitResponse, error) {
	shopper := xcontext.RequestShopper(ctx)
	if shopper.Shop == "" || shopper.CustomerID == "" {
		return nil, errorx.New(errorx.Unauthenticated, ReasonLoginRequired)
	}

	if req.Email == "" {
		req.Email = shopper.Email
	}

	if err := d.validate(ctx, req); err != nil {
		return nil, err
	}

	challenge, err := d.eligibility.GetActiveChallenge(ctx, shopper.Shop)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active challenge: %v", err)
		return nil, errorx.Unknown
	}

	var eligibility model.Eligibility
	if submissionType == entity.SubmissionStart {
		eligibility, err = d.eligibility.canStart(ctx, challenge, shopper.CustomerID)
	} else {
		eligibility, err = d.eligibility.canEnd(ctx, challenge, shopper.CustomerID)
	}
	if err != nil {
		return nil, err
	}

	if !eligibility.Eligible {
		return nil, errorx.New(errorx.NotEligible, eligibility.Reason)
	}

	_, err = d.submissionRepo.GetByID(ctx, req.SubmissionID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This submission has already been submitted")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	for _, photo := range req.Photos {
		err := d.storage.Finalize(ctx, &storage.UploadedObject{
			URL:          photo.URL,
			SubmissionID: req.SubmissionID,
			Order:        photo.Order,
		})
		if err != nil {
			return nil, err
		}
	}

	participant, err := d.eligibility.getOrCreateParticipant(ctx, challenge, ParticipantIdentity{
		CustomerID: shopper.CustomerID,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get or create participant: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now().UTC()
	submission := &entity.Submission{
		Base:          entity.Base{ID: req.SubmissionID},
		ParticipantID: participant.ID,
		Type:          submissionType,
		Weight:        req.Weight,
		SubmittedAt:   now,
		Notes:         sql.NullString{Valid: req.Notes != "", String: req.Notes},
	}

	photos := []entity.Photo{}
	for _, photo := range req.Photos {
		photos = append(photos, entity.Photo{
			Base:         entity.Base{ID: uuid.NewString()},
			SubmissionID: submission.ID,
			Order:        photo.Order,
			Orientation:  entity.OrientationByOrder[photo.Order],
			URL:          photo.URL,
			FileName:     photo.FileName,
			FileSize:     photo.FileSize,
			MimeType:     photo.FileType,
		})
	}

	from, to := entity.ParticipantNotStarted, entity.ParticipantInProgress
	data := map[string]any{
		"start_weight": sql.NullFloat64{Valid: true, Float64: req.Weight},
		"started_at":   sql.NullTime{Valid: true, Time: now},
	}
	if submissionType == entity.SubmissionEnd {
		from, to = entity.ParticipantInProgress, entity.ParticipantCompleted
		data = map[string]any{
			"end_weight":   sql.NullFloat64{Valid: true, Float64: req.Weight},
			"completed_at": sql.NullTime{Valid: true, Time: now},
		}

		// A start form whose status update was lost leaves the participant
		// NOT_STARTED. The end form completes it with the recorded start.
		if participant.Status == entity.ParticipantNotStarted {
			start, err := d.startSubmission(ctx, participant.ID)
			if err != nil {
				return nil, err
			}

			from = entity.ParticipantNotStarted
			data["start_weight"] = sql.NullFloat64{Valid: true, Float64: start.Weight}
			data["started_at"] = sql.NullTime{Valid: true, Time: start.SubmittedAt}
		}
	}

	// The submission, its photos and the new status are written together, a
	// submission never exists without its photos.
	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := d.submissionRepo.Create(txCtx, submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create submission: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.photoRepo.BulkInsert(txCtx, photos); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create photos: %v", err)
		return nil, errorx.Unknown
	}

	err = d.participantRepo.UpdateStatus(txCtx, participant.ID, from, to, data)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotEligible, d.conflictReason(txCtx, participant, submissionType))
		}

		xcontext.Logger(ctx).Errorf("Cannot update participant status: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit submission: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.SubmissionTotal].WithLabelValues(string(submissionType)).Inc()

	if !participant.OrdersSyncedAt.Valid {
		syncCtx := ctx
		if timeout := xcontext.Configs(ctx).Shopify.LookupTimeout; timeout > 0 {
			var cancel context.CancelFunc
			syncCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		if _, err := d.orderSyncer.Sync(syncCtx, participant); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot sync orders of participant %s: %v", participant.ID, err)
		}
	}

	return &model.SubmitResponse{SubmissionID: submission.ID, Status: string(to)}, nil
}

func (d *submissionDomain) startSubmission(ctx context.Context, participantID string) (*entity.Submission, error) {
	submissions, err := d.submissionRepo.GetByParticipantID(ctx, participantID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions of participant: %v", err)
		return nil, errorx.Unknown
	}

	for i := range submissions {
		if submissions[i].Type == entity.SubmissionStart {
			return &submissions[i], nil
		}
	}

	return nil, errorx.New(errorx.NotEligible, ReasonStartFormMissing)
}

// conflictReason explains a status transition that matched no row, from the
// status another request left the participant in.
func (d *submissionDomain) conflictReason(
	ctx context.Context, participant *entity.Participant, submissionType entity.SubmissionType,
) string {
	current, err := d.participantRepo.Get(ctx, participant.ChallengeID, participant.CustomerID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot reload participant %s: %v", participant.ID, err)
		current = participant
	}

	switch {
	case current.Status == entity.ParticipantCompleted:
		return ReasonAlreadyCompleted
	case submissionType == entity.SubmissionStart:
		return ReasonAlreadyStarted
	case current.Status == entity.ParticipantNotStarted:
		return ReasonStartFormMissing
	default:
		return ReasonAlreadyCompleted
	}
}

func (d *submissionDomain) validate(ctx context.Context, req *model.SubmitRequest) error {
	cfg := xcontext.Configs(ctx).Challenge

	if _, err := uuid.Parse(req.SubmissionID); err != nil {
		return errorx.NewField("submission_id", "Invalid submission id")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return errorx.NewField("email", "Email is required")
	}

	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return errorx.NewField("email", "Invalid email address")
	}

	if req.Weight < cfg.MinWeight || req.Weight > cfg.MaxWeight {
		return errorx.NewField("weight", "Weight must be between %g and %g", cfg.MinWeight, cfg.MaxWeight)
	}

	if len(req.Notes) > cfg.MaxNotes {
		return errorx.NewField("notes", "Notes must be at most %d characters", cfg.MaxNotes)
	}

	if len(req.Photos) != entity.PhotoCount {
		return errorx.NewField("photos", "Exactly %d photos are required", entity.PhotoCount)
	}

	seen := map[int]bool{}
	for _, photo := range req.Photos {
		if _, ok := entity.OrientationByOrder[photo.Order]; !ok || seen[photo.Order] {
			return errorx.NewField("photos", "Photos must have distinct orders from 1 to %d", entity.PhotoCount)
		}
		seen[photo.Order] = true

		if photo.URL == "" {
			return errorx.NewField("photos", "Photo %d has not been uploaded", photo.Order)
		}

		err := d.storage.Validate(&storage.UploadRequest{
			FileName:     photo.FileName,
			FileType:     photo.FileType,
			FileSize:     photo.FileSize,
			SubmissionID: req.SubmissionID,
			Order:        photo.Order,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
