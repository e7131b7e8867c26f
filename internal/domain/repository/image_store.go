package repository

import (
	"context"
	"io"
)

// Upload is one file handed to an ImageStore.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// StoredImage is an uploaded object: URL is public, Key addresses it for
// deletion.
type StoredImage struct {
	URL string
	Key string
}

// ImageStore is the external image collaborator.
type ImageStore interface {
	Put(ctx context.Context, folder string, up Upload) (StoredImage, error)
	Delete(ctx context.Context, key string) error
}
