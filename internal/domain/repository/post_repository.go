package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

// PostFilter narrows a feed. A nil Owner means every post.
type PostFilter struct {
	Owner *primitive.ObjectID
}

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Post, error)
	// View returns the projected post for viewer (nil for anonymous).
	View(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*entity.PostView, error)
	// Feed lists projected posts newest first.
	Feed(ctx context.Context, filter PostFilter, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, content *string, tags []string) error
	ReplaceImages(ctx context.Context, id primitive.ObjectID, images []entity.Image) error
	// DeleteOwned deletes the post only when owner matches and returns the
	// deleted document.
	DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (*entity.Post, error)
}
