package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/internal/domain/repository"
)

type LikeRepository struct {
	coll *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{coll: db.Collection(entity.LikesCollection)}
}

func likePair(post, user primitive.ObjectID) bson.D {
	return bson.D{{Key: "post", Value: post}, {Key: "likedBy", Value: user}}
}

func (r *LikeRepository) Toggle(ctx context.Context, post, user primitive.ObjectID) (bool, error) {
	now := time.Now().UTC()
	return toggle(ctx, r.coll, likePair(post, user), entity.Like{
		Post: post, LikedBy: user, CreatedAt: now, UpdatedAt: now,
	})
}

func (r *LikeRepository) IsLiked(ctx context.Context, post, user primitive.ObjectID) (bool, error) {
	return exists(ctx, r.coll, likePair(post, user))
}

func (r *LikeRepository) CountByPost(ctx context.Context, post primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{{Key: "post", Value: post}})
}

func (r *LikeRepository) DeleteByPost(ctx context.Context, post primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "post", Value: post}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
