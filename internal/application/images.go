package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	repo "github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/internal/infrastructure/storage"
)

// discardImages deletes stored objects that no document references. It runs
// detached from ctx and only logs failures.
func discardImages(ctx context.Context, store repo.ImageStore, logger *logrus.Logger, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := storage.DeleteAll(context.WithoutCancel(ctx), store, keys); err != nil {
		logger.WithError(err).WithField("keys", keys).Warn("delete stored images failed")
	}
}

func toImages(stored []repo.StoredImage) []entity.Image {
	out := make([]entity.Image, len(stored))
	for i, s := range stored {
		out[i] = entity.Image{URL: s.URL, Key: s.Key}
	}
	return out
}

func imageKeys(images []entity.Image) []string {
	keys := make([]string, 0, len(images))
	for _, img := range images {
		if img.Key != "" {
			keys = append(keys, img.Key)
		}
	}
	return keys
}
