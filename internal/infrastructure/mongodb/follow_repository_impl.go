package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/internal/infrastructure/mongodb/aggregate"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

type FollowRepository struct {
	coll *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{coll: db.Collection(entity.FollowsCollection)}
}

func followPair(follower, followee primitive.ObjectID) bson.D {
	return bson.D{{Key: "followerId", Value: follower}, {Key: "followeeId", Value: followee}}
}

func (r *FollowRepository) Toggle(ctx context.Context, follower, followee primitive.ObjectID) (bool, error) {
	now := time.Now().UTC()
	return toggle(ctx, r.coll, followPair(follower, followee), entity.Follow{
		FollowerID: follower, FolloweeID: followee, CreatedAt: now, UpdatedAt: now,
	})
}

func (r *FollowRepository) IsFollowing(ctx context.Context, follower, followee primitive.ObjectID) (bool, error) {
	return exists(ctx, r.coll, followPair(follower, followee))
}

func (r *FollowRepository) Counts(ctx context.Context, user primitive.ObjectID) (int64, int64, error) {
	followers, err := r.coll.CountDocuments(ctx, bson.D{{Key: "followeeId", Value: user}})
	if err != nil {
		return 0, 0, err
	}
	following, err := r.coll.CountDocuments(ctx, bson.D{{Key: "followerId", Value: user}})
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

// List joins before paginating: edges to deleted users are dropped by the
// projection and must not be counted.
func (r *FollowRepository) List(ctx context.Context, side repository.FollowSide, user primitive.ObjectID, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.FollowUserView], error) {
	pipeline := aggregate.New(aggregate.FollowListMatch(side, user), aggregate.NewestFirst()).
		Concat(aggregate.FollowListStages(side, viewer))
	return aggregate.Paginate[entity.FollowUserView](ctx, r.coll, pipeline, opts)
}

var _ repository.FollowRepository = (*FollowRepository)(nil)
