package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/application"
	"github.com/oksasatya/vibhive/internal/domain/entity"
	repo "github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

// The handlers depend on these narrow views of the application services.

type UserUseCase interface {
	Register(ctx context.Context, in application.RegisterInput) (*entity.User, error)
	Login(ctx context.Context, in application.LoginInput) (*application.LoginResult, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error
	Refresh(ctx context.Context, refreshToken string) (application.TokenPair, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error
	UpdateDetails(ctx context.Context, userID primitive.ObjectID, in application.UpdateDetailsInput) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID primitive.ObjectID, up *repo.Upload) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, up *repo.Upload) (*entity.User, error)
	Profile(ctx context.Context, username string, viewer *primitive.ObjectID) (*entity.ProfileView, error)
	MyProfile(ctx context.Context, userID primitive.ObjectID) (*entity.ProfileView, error)
	SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error)
}

type PostUseCase interface {
	Create(ctx context.Context, owner primitive.ObjectID, in application.CreatePostInput) (*entity.PostView, error)
	Get(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*entity.PostView, error)
	All(ctx context.Context, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error)
	ByUsername(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error)
	Mine(ctx context.Context, userID primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error)
	UpdateDetails(ctx context.Context, actor, id primitive.ObjectID, in application.UpdatePostInput) (*entity.PostView, error)
	UpdateImages(ctx context.Context, actor, id primitive.ObjectID, uploads []repo.Upload) (*entity.PostView, error)
	Delete(ctx context.Context, actor, id primitive.ObjectID) error
}

type LikeUseCase interface {
	Toggle(ctx context.Context, actor, post primitive.ObjectID) (bool, error)
}

type FollowUseCase interface {
	Toggle(ctx context.Context, actor, target primitive.ObjectID) (*application.FollowResult, error)
	Followers(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*application.FollowList, error)
	Following(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*application.FollowList, error)
}

var (
	_ UserUseCase   = (*application.UserService)(nil)
	_ PostUseCase   = (*application.PostService)(nil)
	_ LikeUseCase   = (*application.LikeService)(nil)
	_ FollowUseCase = (*application.FollowService)(nil)
)
