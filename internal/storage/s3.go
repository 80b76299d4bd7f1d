package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3PhotoStore uploads report photos to an S3 bucket
type S3PhotoStore struct {
	client        putObjectAPI
	bucket        string
	publicBaseURL string
}

// NewS3PhotoStore loads the default AWS credential chain and returns a store
// writing to bucket. Objects are addressed under publicBaseURL, or the bucket's
// virtual-hosted URL when it is empty.
func NewS3PhotoStore(ctx context.Context, bucket, publicBaseURL string) (*S3PhotoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
	}

	return newS3PhotoStore(s3.NewFromConfig(cfg), bucket, publicBaseURL), nil
}

func newS3PhotoStore(client putObjectAPI, bucket, publicBaseURL string) *S3PhotoStore {
	return &S3PhotoStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// PutPhoto stores data under key and returns its public URL
func (s *S3PhotoStore) PutPhoto(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the URL a stored photo is served from
func (s *S3PhotoStore) PublicURL(key string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(key, "/")
}
