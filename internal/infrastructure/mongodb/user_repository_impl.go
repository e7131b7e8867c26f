package mongodb

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/internal/infrastructure/mongodb/aggregate"
	"github.com/oksasatya/vibhive/pkg/apperror"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(entity.UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	res, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Conflict("User with email or username already exists")
	}
	if err != nil {
		return err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*entity.User, error) {
	u := &entity.User{}
	if err := r.coll.FindOne(ctx, filter).Decode(u); err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: strings.ToLower(username)}})
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	return r.findOne(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: login}},
		bson.D{{Key: "email", Value: login}},
	}}})
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "username", Value: strings.ToLower(username)}},
		bson.D{{Key: "email", Value: strings.ToLower(email)}},
	}}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.UserPatch) (*entity.User, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if patch.Username != nil {
		set = append(set, bson.E{Key: "username", Value: strings.ToLower(*patch.Username)})
	}
	if patch.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *patch.Bio})
	}
	if patch.Avatar != nil {
		set = append(set, bson.E{Key: "avatar", Value: *patch.Avatar})
	}
	if patch.CoverImage != nil {
		set = append(set, bson.E{Key: "coverImage", Value: *patch.CoverImage})
	}

	u := &entity.User{}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(u)
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperror.Conflict("username is already taken")
	}
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func (r *UserRepository) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.updateOne(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: hash},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}})
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token *string) error {
	if token == nil {
		return r.updateOne(ctx, id, bson.D{{Key: "$unset", Value: bson.D{{Key: "refreshToken", Value: 1}}}})
	}
	return r.updateOne(ctx, id, bson.D{{Key: "$set", Value: bson.D{{Key: "refreshToken", Value: *token}}}})
}

func (r *UserRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.D) error {
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("user")
	}
	return nil
}

func (r *UserRepository) profile(ctx context.Context, match aggregate.Match) (*entity.ProfileView, error) {
	p, found, err := aggregate.One[entity.ProfileView](ctx, r.coll, aggregate.New(match).Concat(aggregate.ProfileStages()))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("user")
	}
	return &p, nil
}

func (r *UserRepository) ProfileByID(ctx context.Context, id primitive.ObjectID) (*entity.ProfileView, error) {
	return r.profile(ctx, aggregate.Match{Filter: aggregate.Eq("_id", id)})
}

func (r *UserRepository) ProfileByUsername(ctx context.Context, username string) (*entity.ProfileView, error) {
	return r.profile(ctx, aggregate.Match{Filter: aggregate.Eq("username", strings.ToLower(username))})
}

func (r *UserRepository) SummaryByUsername(ctx context.Context, username string) (*entity.UserSummary, error) {
	pipeline := aggregate.New(aggregate.Match{Filter: aggregate.Eq("username", strings.ToLower(username))}).
		Concat(aggregate.UserSummaryStages())
	s, found, err := aggregate.One[entity.UserSummary](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.NotFound("user")
	}
	return &s, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
