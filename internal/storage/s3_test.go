package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPutPhoto(t *testing.T) {
	client := &fakeS3{}
	store := newS3PhotoStore(client, "report-photos", "https://cdn.example.com/")

	url, err := store.PutPhoto(context.Background(), "reports/abc.jpg", "image/jpeg", []byte("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/reports/abc.jpg", url)
	assert.Equal(t, "report-photos", aws.ToString(client.input.Bucket))
	assert.Equal(t, "reports/abc.jpg", aws.ToString(client.input.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(10), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, []byte("jpeg-bytes"), client.body)
}

func TestPutPhotoError(t *testing.T) {
	store := newS3PhotoStore(&fakeS3{err: errors.New("access denied")}, "report-photos", "https://cdn.example.com")

	_, err := store.PutPhoto(context.Background(), "reports/abc.jpg", "image/jpeg", []byte("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestPublicURL(t *testing.T) {
	store := newS3PhotoStore(&fakeS3{}, "b", "https://cdn.example.com")
	assert.Equal(t, "https://cdn.example.com/reports/x.png", store.PublicURL("/reports/x.png"))
}
