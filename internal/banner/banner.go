// Package banner serves the server banner image over the DownloadBanner
// transaction, fetching the object from S3-compatible storage.
package banner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/mxdserver/mxd/internal/dispatch"
	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/wire"
)

// ErrNotConfigured is returned when no banner object has been set up for
// this server.
var ErrNotConfigured = errors.New("banner: not configured")

// Client is the subset of the S3 API the banner service needs.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Service fetches the configured banner object on each request. Banner
// images are small and change rarely, so no caching layer is needed.
type Service struct {
	client Client
	bucket string
	key    string
}

// NewService builds a banner Service reading bucket/key via client.
func NewService(client Client, bucket, key string) *Service {
	return &Service{client: client, bucket: bucket, key: key}
}

// Fetch downloads the banner object's bytes.
func (s *Service) Fetch(ctx context.Context) ([]byte, error) {
	if s.bucket == "" || s.key == "" {
		return nil, ErrNotConfigured
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("fetch banner: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read banner body: %w", err)
	}
	return data, nil
}

func isNotFoundError(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}

// RegisterRoutes binds the DownloadBanner transaction to this service.
func (s *Service) RegisterRoutes(r *dispatch.Router) {
	r.Register(wire.TxnDownloadBanner, s.handleDownloadBanner)
}

func (s *Service) handleDownloadBanner(ctx context.Context, _ *session.Session, _ wire.ParamMap) (wire.ParamBlock, error) {
	data, err := s.Fetch(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return wire.ParamBlock{}, nil
		}
		return nil, dispatch.NewDomainError(dispatch.CodeInternal)
	}
	return wire.ParamBlock{{ID: wire.FieldData, Value: data}}, nil
}
