package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	appConfig "form-template-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// DefaultPresignExpiry is how long an upload URL stays valid
const DefaultPresignExpiry = 5 * time.Minute

// S3ClientInterface defines the storage operations used for file elements
type S3ClientInterface interface {
	GenerateFileKey(elementID, fileExt string) (string, error)
	GeneratePresignedURL(ctx context.Context, elementID, fileName, contentType string) (string, string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(key string) string
}

// S3Client wraps AWS S3 client and implements S3ClientInterface
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	endpoint      string // MinIO 사용 시 로컬 엔드포인트
	expiry        time.Duration
}

// NewS3Client creates a new S3 client
func NewS3Client(cfg *appConfig.S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	if cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("access key and secret key are required for MinIO endpoint")
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), awsOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true // MinIO
		}
	})

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      cfg.Endpoint,
		expiry:        DefaultPresignExpiry,
	}, nil
}

// awsOptions picks static credentials when keys are configured and falls back
// to the default chain (IAM role, ~/.aws/credentials) otherwise. A custom
// endpoint points the client at MinIO.
func awsOptions(cfg *appConfig.S3Config) []func(*config.LoadOptions) error {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	if cfg.Endpoint != "" {
		endpoint := aws.Endpoint{URL: cfg.Endpoint, HostnameImmutable: true, SigningRegion: cfg.Region}
		opts = append(opts, config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(string, string, ...interface{}) (aws.Endpoint, error) { return endpoint, nil })))
	}
	return opts
}

// GenerateFileKey generates a unique S3 file key
// Format: form/uploads/{elementId}/{year}/{month}/{uuid}_{timestamp}.ext
func (c *S3Client) GenerateFileKey(elementID, fileExt string) (string, error) {
	return buildFileKey(elementID, fileExt, time.Now())
}

func buildFileKey(elementID, fileExt string, now time.Time) (string, error) {
	if _, err := uuid.Parse(elementID); err != nil {
		return "", fmt.Errorf("invalid element id: %s", elementID)
	}
	fileExt = strings.ToLower(fileExt)

	return fmt.Sprintf("form/uploads/%s/%s/%s/%s_%d%s",
		elementID, now.Format("2006"), now.Format("01"), uuid.New().String(), now.Unix(), fileExt), nil
}

// GeneratePresignedURL returns a PUT URL and the object key it targets
func (c *S3Client) GeneratePresignedURL(ctx context.Context, elementID, fileName, contentType string) (string, string, error) {
	fileKey, err := c.GenerateFileKey(elementID, filepath.Ext(fileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate file key: %w", err)
	}

	presignedReq, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(fileKey),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = c.expiry
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return c.externalURL(presignedReq.URL), fileKey, nil
}

// externalURL rewrites the docker-internal MinIO host to the configured endpoint host
func (c *S3Client) externalURL(u string) string {
	if c.endpoint == "" {
		return u
	}
	const internalMinIOHost = "minio:9000"
	externalHost := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "http://"), "https://")
	return strings.Replace(u, internalMinIOHost, externalHost, 1)
}

// DeleteFile deletes a file from S3
func (c *S3Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// GetFileURL returns the public URL for a file
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.endpoint, "/"), c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

// ExpiresIn reports the presigned URL lifetime in seconds
func (c *S3Client) ExpiresIn() int {
	return int(c.expiry / time.Second)
}
