package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/config"
)

// S3PhotoStore keeps room photos in an S3 compatible bucket.
type S3PhotoStore struct {
	client   *s3.Client
	bucket   string
	endpoint string
	region   string
}

func NewS3PhotoStore(cfg *config.Config) *S3PhotoStore {
	client := s3.NewFromConfig(aws.Config{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
	}, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3PhotoStore{
		client:   client,
		bucket:   cfg.S3Bucket,
		endpoint: strings.TrimRight(cfg.S3Endpoint, "/"),
		region:   cfg.S3Region,
	}
}

func (s *S3PhotoStore) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=86400"),
	})
	return errors.Wrapf(err, "put %s", key)
}

func (s *S3PhotoStore) URL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// RoomPhotoKey is the object key of a room's photo.
func RoomPhotoKey(roomID uint) string {
	return fmt.Sprintf("rooms/%d.webp", roomID)
}
