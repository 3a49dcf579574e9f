package output

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PublisherConfig holds the connection settings for an S3-compatible store.
type PublisherConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// PublisherConfigFromEnv reads MINIO_ENDPOINT, MINIO_ACCESS_KEY,
// MINIO_SECRET_KEY, MINIO_USE_SSL and MINIO_REGION.
func PublisherConfigFromEnv() PublisherConfig {
	return PublisherConfig{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		Region:    os.Getenv("MINIO_REGION"),
	}
}

// Publisher uploads finished output files to a bucket.
type Publisher struct {
	client *minio.Client
	region string
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing one or more required settings: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &Publisher{client: client, region: cfg.Region}, nil
}

// EnsureBucket creates bucket unless it already exists.
func (p *Publisher) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := p.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := p.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: p.region}); err != nil {
		return fmt.Errorf("creating bucket %s: %w", bucket, err)
	}
	return nil
}

// Publish uploads the file at path to bucket/key, overwriting any object
// already stored there.
func (p *Publisher) Publish(ctx context.Context, bucket, key, path, contentType string) error {
	if err := p.EnsureBucket(ctx, bucket); err != nil {
		return err
	}
	info, err := p.client.FPutObject(ctx, bucket, key, path, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to store %s in bucket %s: %w", path, bucket, err)
	}
	log.Printf("Stored %s in bucket '%s' with key '%s' (%d bytes)", path, bucket, key, info.Size)
	return nil
}
