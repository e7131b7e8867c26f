package storage

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/vibhive/internal/domain/repository"
)

// PutAll uploads every file concurrently and returns the results in input
// order. It is all-or-nothing: when any upload fails, the uploads that did
// succeed are deleted before the error is returned.
func PutAll(ctx context.Context, store repository.ImageStore, folder string, uploads []repository.Upload) ([]repository.StoredImage, error) {
	out := make([]repository.StoredImage, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, up := range uploads {
		g.Go(func() error {
			img, err := store.Put(gctx, folder, up)
			if err != nil {
				return err
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var keys []string
		for _, img := range out {
			if img.Key != "" {
				keys = append(keys, img.Key)
			}
		}
		// The group context is cancelled by now; cleanup must still run.
		if cerr := DeleteAll(context.WithoutCancel(ctx), store, keys); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}
	return out, nil
}

// DeleteAll requests deletion of every key once, concurrently, and joins
// the failures.
func DeleteAll(ctx context.Context, store repository.ImageStore, keys []string) error {
	errs := make([]error, len(keys))
	var g errgroup.Group
	for i, key := range keys {
		g.Go(func() error {
			errs[i] = store.Delete(ctx, key)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
