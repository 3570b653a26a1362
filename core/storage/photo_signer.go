package storage

import (
	"context"
	"strings"
	"time"

	"taruf-api/core/config"
	"taruf-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// URLSigner turns a stored photo reference into a URL a browser can load.
type URLSigner interface {
	SignURL(ctx context.Context, ref string) string
}

type PhotoSigner struct {
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

// NewPhotoSigner returns a signer for the configured bucket. Without a bucket
// every reference is passed through unchanged.
func NewPhotoSigner(cfg config.StorageConfig) *PhotoSigner {
	if cfg.Bucket == "" {
		return &PhotoSigner{}
	}

	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.Endpoint != "",
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return &PhotoSigner{
		presigner: s3.NewPresignClient(s3.New(opts)),
		bucket:    cfg.Bucket,
		ttl:       cfg.PhotoURLTTL,
	}
}

func (p *PhotoSigner) SignURL(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || p.presigner == nil || isAbsoluteURL(ref) {
		return ref
	}

	req, err := p.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(strings.TrimPrefix(ref, "/")),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		logger.Warn("PhotoSigner:SignURL:PresignFailed", "key", ref, err)
		return ref
	}
	return req.URL
}

// SignPtr signs an optional reference in place of the caller's copy.
func (p *PhotoSigner) SignPtr(ctx context.Context, ref *string) *string {
	if ref == nil {
		return nil
	}
	signed := p.SignURL(ctx, *ref)
	return &signed
}

func isAbsoluteURL(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
