package storage

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fitchallenge/backend/config"
	"github.com/fitchallenge/backend/pkg/api"
	"github.com/fitchallenge/backend/pkg/crypto"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// mediaAdapter issues signed direct uploads to a hosted media service
// (Cloudinary compatible API).
type mediaAdapter struct {
	cfg          config.MediaConfigs
	rules        Rules
	expiration   time.Duration
	apiGenerator api.Generator
}

func NewMediaAdapter(cfg config.StorageConfigs) *mediaAdapter {
	return newMediaAdapter(cfg, api.NewGenerator(strings.TrimSuffix(cfg.Media.UploadURL, "/")))
}

func newMediaAdapter(cfg config.StorageConfigs, generator api.Generator) *mediaAdapter {
	return &mediaAdapter{
		cfg:          cfg.Media,
		rules:        Rules{MaxSize: cfg.MaxSize, AllowedTypes: cfg.AllowedTypes},
		expiration:   cfg.Expiration,
		apiGenerator: generator,
	}
}

func (a *mediaAdapter) Name() string {
	return "media"
}

func (a *mediaAdapter) Validate(req *UploadRequest) error {
	return a.rules.Validate(req)
}

// sign follows the hosted media signature scheme: the parameters are sorted
// by name, joined as k=v with &, then the api secret is appended and the
// result is hashed.
func (a *mediaAdapter) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	return crypto.SHA256Hex([]byte(strings.Join(pairs, "&") + a.cfg.APISecret))
}

func (a *mediaAdapter) publicURL(publicID string) string {
	return fmt.Sprintf("%s/%s/image/upload/%s",
		strings.TrimSuffix(a.cfg.DeliverURL, "/"), a.cfg.CloudName, publicID)
}

func (a *mediaAdapter) IssueUploadTarget(ctx context.Context, req *UploadRequest) (*UploadResponse, error) {
	if err := a.Validate(req); err != nil {
		return nil, err
	}

	publicID := path.Join(a.cfg.Folder, objectPrefix(req.SubmissionID, req.Order)+uuid.NewString())
	now := time.Now()
	signed := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(now.Unix(), 10),
	}

	fields := map[string]string{
		"api_key":             a.cfg.APIKey,
		"signature":           a.sign(signed),
		"signature_algorithm": "sha256",
	}
	for k, v := range signed {
		fields[k] = v
	}

	return &UploadResponse{
		Target: UploadTarget{
			URL:       fmt.Sprintf("%s/%s/image/upload", strings.TrimSuffix(a.cfg.UploadURL, "/"), a.cfg.CloudName),
			Method:    http.MethodPost,
			Fields:    fields,
			ExpiresAt: now.Add(a.expiration),
		},
		PublicURL: a.publicURL(publicID),
		Key:       publicID,
	}, nil
}

func (a *mediaAdapter) Finalize(ctx context.Context, obj *UploadedObject) error {
	base := a.publicURL("")
	if !strings.HasPrefix(obj.URL, base) {
		return errorx.New(errorx.InvalidFile, "Photo %d was not uploaded to this store", obj.Order)
	}

	publicID := strings.TrimPrefix(obj.URL, base)
	if !strings.HasPrefix(publicID, path.Join(a.cfg.Folder, objectPrefix(obj.SubmissionID, obj.Order))) {
		return errorx.New(errorx.InvalidFile, "Photo %d does not belong to this submission", obj.Order)
	}

	resp, err := a.apiGenerator.New("/%s/resources/image/upload/%s", a.cfg.CloudName, publicID).
		GET(ctx, api.BasicAuth(a.cfg.APIKey, a.cfg.APISecret))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get media resource %s: %v", publicID, err)
		return errorx.Unknown
	}

	if !resp.IsSuccess() {
		xcontext.Logger(ctx).Warnf("Media resource %s is not found: %d", publicID, resp.Code)
		return errorx.New(errorx.InvalidFile, "Photo %d has not been uploaded", obj.Order)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return errorx.New(errorx.InvalidFile, "Photo %d has not been uploaded", obj.Order)
	}

	size, err := body.GetInt("bytes")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid media resource response: %v", err)
		return errorx.Unknown
	}

	if int64(size) > a.rules.MaxSize {
		return errorx.New(errorx.InvalidFile, "Photo %d is too large", obj.Order)
	}

	format, err := body.GetString("format")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid media resource response: %v", err)
		return errorx.Unknown
	}

	if !slices.Contains(a.rules.AllowedTypes, "image/"+strings.ReplaceAll(format, "jpg", "jpeg")) {
		return errorx.New(errorx.InvalidFile, "Photo %d has an invalid type", obj.Order)
	}

	return nil
}
