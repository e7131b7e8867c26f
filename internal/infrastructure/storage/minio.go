package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/oksasatya/vibhive/internal/domain/repository"
)

// ClientMinio is the part of *minio.Client the store needs.
type ClientMinio interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

const defaultContentType = "application/octet-stream"

// MinioStore keeps images in an S3-compatible bucket.
type MinioStore struct {
	client     ClientMinio
	bucket     string
	publicBase string
}

// NewMinioStore connects to endpoint. publicURL is the base used for object
// URLs; when empty it is derived from endpoint.
func NewMinioStore(endpoint, accessKeyID, secretAccessKey, bucket string, useSSL bool, publicURL string) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	if publicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + endpoint
	}
	return newMinioStore(client, bucket, publicURL), nil
}

func newMinioStore(client ClientMinio, bucket, publicURL string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket, publicBase: strings.TrimRight(publicURL, "/")}
}

func (s *MinioStore) Put(ctx context.Context, folder string, up repository.Upload) (repository.StoredImage, error) {
	r, err := up.Open()
	if err != nil {
		return repository.StoredImage{}, err
	}
	defer func() { _ = r.Close() }()

	contentType := up.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	key := objectKey(folder, up.Filename)
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, up.Size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return repository.StoredImage{}, fmt.Errorf("put %s: %w", key, err)
	}
	return repository.StoredImage{URL: s.publicBase + "/" + s.bucket + "/" + key, Key: key}, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

var _ repository.ImageStore = (*MinioStore)(nil)
