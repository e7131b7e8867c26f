package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LikeRepository interface {
	// Toggle flips the (post, user) like and returns the new state.
	Toggle(ctx context.Context, post, user primitive.ObjectID) (liked bool, err error)
	IsLiked(ctx context.Context, post, user primitive.ObjectID) (bool, error)
	CountByPost(ctx context.Context, post primitive.ObjectID) (int64, error)
	DeleteByPost(ctx context.Context, post primitive.ObjectID) (int64, error)
}
