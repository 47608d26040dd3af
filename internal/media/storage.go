// Package media processes uploaded catalog images and writes them to object
// storage, returning the public URL stored on billboards and product images.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Storage persists an object and returns its public URL.
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// S3Config configures an S3-compatible bucket (AWS, R2, MinIO).
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string
}

// S3Storage writes objects to an S3-compatible bucket.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3 creates an S3 backend. Static credentials are used when given,
// otherwise the default AWS credential chain.
func NewS3(ctx context.Context, c S3Config) (*S3Storage, error) {
	region := c.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = true
	})

	public := strings.TrimRight(c.PublicURL, "/")
	if public == "" {
		public = strings.TrimRight(c.Endpoint, "/") + "/" + c.Bucket
	}
	return &S3Storage{client: client, bucket: c.Bucket, publicURL: public}, nil
}

func (s *S3Storage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

// LocalStorage writes objects below a directory served at BaseURL.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

// NewLocal creates the directory if needed.
func NewLocal(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *LocalStorage) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	full := filepath.Join(l.Dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", full, err)
	}
	return l.BaseURL + "/" + clean, nil
}

// Uploader turns raw uploads into stored JPEGs.
type Uploader struct {
	Storage Storage
}

// Upload processes the image and stores it under stores/{storeID}/.
func (u *Uploader) Upload(ctx context.Context, storeID string, r io.Reader) (string, error) {
	img, err := Process(r)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("stores/%s/%s.jpg", storeID, uuid.NewString())
	return u.Storage.Put(ctx, key, img.Data, img.MIME)
}
