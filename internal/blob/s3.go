package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config configures an S3-compatible object store (MinIO, R2, S3).
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
	// PublicURL is prefixed to "<bucket>/<path>" to form object URLs.
	PublicURL string
}

// S3Store implements Store on top of minio-go.
type S3Store struct {
	client *minio.Client
	cfg    S3Config
}

// NewS3Store creates an S3Store. It does not contact the server.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("blob endpoint is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("blob credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("blob bucket is required")
	}

	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL
	if u, err := url.Parse(cfg.Endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	if cfg.PublicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		cfg.PublicURL = scheme + "://" + endpoint
	}

	return &S3Store{client: client, cfg: cfg}, nil
}

// Bucket returns the configured bucket name.
func (s *S3Store) Bucket() string {
	return s.cfg.Bucket
}

// EnsureBucket creates the bucket if it does not exist.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *S3Store) Put(ctx context.Context, data []byte, objectPath, contentType string, metadata map[string]string) (string, error) {
	if objectPath == "" {
		return "", fmt.Errorf("object path is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectPath, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return publicURL(s.cfg.PublicURL, s.cfg.Bucket, objectPath), nil
}

func (s *S3Store) Delete(ctx context.Context, objectPath string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectPath, minio.RemoveObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *S3Store) Ping(ctx context.Context) error {
	if _, err := s.client.BucketExists(ctx, s.cfg.Bucket); err != nil {
		return fmt.Errorf("blob store unreachable: %w", err)
	}
	return nil
}
