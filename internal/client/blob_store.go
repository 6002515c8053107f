package client

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appConfig "client-portal-api/internal/config"
)

// BlobStore is the object storage side of the persistence gateway.
type BlobStore interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
}

// OperationRecorder receives timing for every object storage call.
type OperationRecorder interface {
	RecordBlobOperation(bucket, operation string, duration time.Duration, err error)
}

// S3Client implements BlobStore on S3 or any S3 compatible endpoint such as MinIO.
type S3Client struct {
	client        *s3.Client
	region        string
	endpoint      string
	publicBaseURL string
	recorder      OperationRecorder
}

// NewS3Client creates a new S3 client
func NewS3Client(cfg *appConfig.S3Config, recorder OperationRecorder) (*S3Client, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	} else if cfg.Endpoint != "" {
		return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		client:        client,
		region:        cfg.Region,
		endpoint:      strings.TrimSuffix(cfg.Endpoint, "/"),
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		recorder:      recorder,
	}, nil
}

// Upload stores body under bucket/key.
func (c *S3Client) Upload(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	start := time.Now()
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	c.record(bucket, "upload", start, err)
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Delete removes bucket/key.
func (c *S3Client) Delete(ctx context.Context, bucket, key string) error {
	start := time.Now()
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	c.record(bucket, "delete", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL returns the address clients use to fetch bucket/key.
func (c *S3Client) PublicURL(bucket, key string) string {
	return publicURL(c.publicBaseURL, c.endpoint, c.region, bucket, key)
}

func (c *S3Client) record(bucket, operation string, start time.Time, err error) {
	if c.recorder != nil {
		c.recorder.RecordBlobOperation(bucket, operation, time.Since(start), err)
	}
}

func publicURL(publicBaseURL, endpoint, region, bucket, key string) string {
	switch {
	case publicBaseURL != "":
		return fmt.Sprintf("%s/%s/%s", publicBaseURL, bucket, key)
	case endpoint != "":
		return fmt.Sprintf("%s/%s/%s", endpoint, bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
	}
}

// ProjectFileKey builds "{projectId}/{unixMillis}-{random}.{ext}".
func ProjectFileKey(projectID uuid.UUID, fileName string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s%s", projectID, now.UnixMilli(), randomSuffix(), extension(fileName))
}

// OnboardingAssetKey builds "{projectId}/{assetType}/{unixMillis}_{random}.{ext}".
func OnboardingAssetKey(projectID uuid.UUID, assetType, fileName string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d_%s%s", projectID, assetType, now.UnixMilli(), randomSuffix(), extension(fileName))
}

// KeyFromURL recovers the object key from a URL produced by PublicURL for bucket.
func KeyFromURL(url, bucket string) (string, bool) {
	marker := "/" + bucket + "/"
	if i := strings.Index(url, marker); i >= 0 {
		return url[i+len(marker):], true
	}
	if i := strings.Index(url, ".amazonaws.com/"); i >= 0 && strings.Contains(url, "://"+bucket+".") {
		return url[i+len(".amazonaws.com/"):], true
	}
	return "", false
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func extension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

var _ BlobStore = (*S3Client)(nil)
