package storage

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/fitchallenge/backend/config"
	"github.com/fitchallenge/backend/pkg/errorx"
	"github.com/fitchallenge/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

type s3Adapter struct {
	client     s3iface.S3API
	cfg        config.S3Configs
	rules      Rules
	expiration time.Duration
}

func NewS3Adapter(cfg config.StorageConfigs) (*s3Adapter, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:           aws.String(cfg.S3.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		Endpoint:         aws.String(cfg.S3.Endpoint),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.S3.SSLDisabled),
	})
	if err != nil {
		return nil, err
	}

	return newS3Adapter(s3.New(sess), cfg), nil
}

func newS3Adapter(client s3iface.S3API, cfg config.StorageConfigs) *s3Adapter {
	return &s3Adapter{
		client:     client,
		cfg:        cfg.S3,
		rules:      Rules{MaxSize: cfg.MaxSize, AllowedTypes: cfg.AllowedTypes},
		expiration: cfg.Expiration,
	}
}

func (a *s3Adapter) Name() string {
	return "s3"
}

func (a *s3Adapter) Validate(req *UploadRequest) error {
	return a.rules.Validate(req)
}

func (a *s3Adapter) key(req *UploadRequest) string {
	name := objectPrefix(req.SubmissionID, req.Order) + uuid.NewString() + extension(req.FileType)
	return path.Join(a.cfg.Prefix, name)
}

func (a *s3Adapter) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(a.cfg.PublicEndpoint, "/"), a.cfg.Bucket, key)
}

func (a *s3Adapter) IssueUploadTarget(ctx context.Context, req *UploadRequest) (*UploadResponse, error) {
	if err := a.Validate(req); err != nil {
		return nil, err
	}

	key := a.key(req)
	putReq, _ := a.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:        aws.String(a.cfg.Bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(req.FileType),
		ContentLength: aws.Int64(req.FileSize),
		ACL:           aws.String("public-read"),
	})

	url, err := putReq.Presign(a.expiration)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot presign upload url: %v, key %s", err, key)
		return nil, errorx.Unknown
	}

	return &UploadResponse{
		Target: UploadTarget{
			URL:    url,
			Method: http.MethodPut,
			Headers: map[string]string{
				"Content-Type": req.FileType,
				"x-amz-acl":    "public-read",
			},
			ExpiresAt: time.Now().Add(a.expiration),
		},
		PublicURL: a.publicURL(key),
		Key:       key,
	}, nil
}

func (a *s3Adapter) Finalize(ctx context.Context, obj *UploadedObject) error {
	base := a.publicURL("")
	if !strings.HasPrefix(obj.URL, base) {
		return errorx.New(errorx.InvalidFile, "Photo %d was not uploaded to this store", obj.Order)
	}

	key := strings.TrimPrefix(obj.URL, base)
	if !strings.HasPrefix(key, path.Join(a.cfg.Prefix, objectPrefix(obj.SubmissionID, obj.Order))) {
		return errorx.New(errorx.InvalidFile, "Photo %d does not belong to this submission", obj.Order)
	}

	head, err := a.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot head object %s: %v", key, err)
		return errorx.New(errorx.InvalidFile, "Photo %d has not been uploaded", obj.Order)
	}

	if aws.Int64Value(head.ContentLength) > a.rules.MaxSize {
		return errorx.New(errorx.InvalidFile, "Photo %d is too large", obj.Order)
	}

	if !slices.Contains(a.rules.AllowedTypes, aws.StringValue(head.ContentType)) {
		return errorx.New(errorx.InvalidFile, "Photo %d has an invalid type", obj.Order)
	}

	return nil
}
