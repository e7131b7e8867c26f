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
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(entity.PostsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Post, error) {
	p := &entity.Post{}
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(p); err != nil {
		return nil, notFound(err, "post")
	}
	return p, nil
}

func (r *PostRepository) View(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*entity.PostView, error) {
	pipeline := aggregate.New(aggregate.Match{Filter: aggregate.Eq("_id", id)}).Concat(aggregate.PostStages(viewer))
	v, found, err := aggregate.One[entity.PostView](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("post")
	}
	return &v, nil
}

// Feed sorts and windows raw posts first; the joins only run for the page.
func (r *PostRepository) Feed(ctx context.Context, filter repository.PostFilter, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	match := aggregate.Match{}
	if filter.Owner != nil {
		match.Filter = aggregate.Eq("owner", *filter.Owner)
	}
	base := aggregate.New(match, aggregate.NewestFirst())
	return aggregate.PaginateWindow[entity.PostView](ctx, r.coll, base, aggregate.PostStages(viewer), opts)
}

func (r *PostRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, content *string, tags []string) error {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if content != nil {
		set = append(set, bson.E{Key: "content", Value: *content})
	}
	if tags != nil {
		set = append(set, bson.E{Key: "tags", Value: tags})
	}
	return r.updateOne(ctx, id, bson.D{{Key: "$set", Value: set}})
}

func (r *PostRepository) ReplaceImages(ctx context.Context, id primitive.ObjectID, images []entity.Image) error {
	return r.updateOne(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "images", Value: images},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}})
}

func (r *PostRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.D) error {
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("post")
	}
	return nil
}

func (r *PostRepository) DeleteOwned(ctx context.Context, id, owner primitive.ObjectID) (*entity.Post, error) {
	p := &entity.Post{}
	err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}, {Key: "owner", Value: owner}}).Decode(p)
	if err != nil {
		return nil, notFound(err, "post")
	}
	return p, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
