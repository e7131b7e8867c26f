package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

// FollowSide picks which end of the follow edge a list shows.
type FollowSide int

const (
	Followers FollowSide = iota
	Following
)

type FollowRepository interface {
	// Toggle flips the follower -> followee edge and returns the new state.
	Toggle(ctx context.Context, follower, followee primitive.ObjectID) (following bool, err error)
	IsFollowing(ctx context.Context, follower, followee primitive.ObjectID) (bool, error)
	Counts(ctx context.Context, user primitive.ObjectID) (followers, following int64, err error)
	List(ctx context.Context, side FollowSide, user primitive.ObjectID, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.FollowUserView], error)
}
