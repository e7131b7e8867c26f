package storage

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/oksasatya/vibhive/internal/domain/repository"
)

const gcsPublicBase = "https://storage.googleapis.com/"

// GCSStore keeps images in a Google Cloud Storage bucket with public read.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

// OpenGCS dials GCS with the service account file at credsPath, or with
// Application Default Credentials when it is empty.
func OpenGCS(ctx context.Context, bucket, credsPath string) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("gcs: bucket is required")
	}
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewGCSStore(client, bucket), nil
}

func (s *GCSStore) Close() error { return s.client.Close() }

func (s *GCSStore) Put(ctx context.Context, folder string, up repository.Upload) (repository.StoredImage, error) {
	r, err := up.Open()
	if err != nil {
		return repository.StoredImage{}, err
	}
	defer func() { _ = r.Close() }()

	key := objectKey(folder, up.Filename)
	wc := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	wc.ContentType = up.ContentType
	wc.ChunkSize = 0 // small files, single request
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return repository.StoredImage{}, err
	}
	if err := wc.Close(); err != nil {
		return repository.StoredImage{}, err
	}
	return repository.StoredImage{URL: gcsPublicBase + s.bucket + "/" + key, Key: key}, nil
}

// Delete treats an already missing object as deleted.
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

var _ repository.ImageStore = (*GCSStore)(nil)
