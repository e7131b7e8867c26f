package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/application"
	"github.com/oksasatya/vibhive/internal/domain/entity"
	repo "github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

type MockUsers struct{ mock.Mock }

func (m *MockUsers) user(args mock.Arguments) (*entity.User, error) {
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUsers) profile(args mock.Arguments) (*entity.ProfileView, error) {
	p, _ := args.Get(0).(*entity.ProfileView)
	return p, args.Error(1)
}

func (m *MockUsers) Register(ctx context.Context, in application.RegisterInput) (*entity.User, error) {
	return m.user(m.Called(ctx, in))
}

func (m *MockUsers) Login(ctx context.Context, in application.LoginInput) (*application.LoginResult, error) {
	args := m.Called(ctx, in)
	r, _ := args.Get(0).(*application.LoginResult)
	return r, args.Error(1)
}

func (m *MockUsers) Logout(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUsers) Refresh(ctx context.Context, token string) (application.TokenPair, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(application.TokenPair), args.Error(1)
}

func (m *MockUsers) ChangePassword(ctx context.Context, id primitive.ObjectID, oldPassword, newPassword string) error {
	return m.Called(ctx, id, oldPassword, newPassword).Error(0)
}

func (m *MockUsers) UpdateDetails(ctx context.Context, id primitive.ObjectID, in application.UpdateDetailsInput) (*entity.User, error) {
	return m.user(m.Called(ctx, id, in))
}

func (m *MockUsers) UpdateAvatar(ctx context.Context, id primitive.ObjectID, up *repo.Upload) (*entity.User, error) {
	return m.user(m.Called(ctx, id, up))
}

func (m *MockUsers) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, up *repo.Upload) (*entity.User, error) {
	return m.user(m.Called(ctx, id, up))
}

func (m *MockUsers) Profile(ctx context.Context, username string, viewer *primitive.ObjectID) (*entity.ProfileView, error) {
	return m.profile(m.Called(ctx, username, viewer))
}

func (m *MockUsers) MyProfile(ctx context.Context, id primitive.ObjectID) (*entity.ProfileView, error) {
	return m.profile(m.Called(ctx, id))
}

func (m *MockUsers) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error) {
	args := m.Called(ctx, q, size)
	hits, _ := args.Get(0).([]entity.UserSummary)
	return hits, args.Error(1)
}

type MockPosts struct{ mock.Mock }

func (m *MockPosts) view(args mock.Arguments) (*entity.PostView, error) {
	v, _ := args.Get(0).(*entity.PostView)
	return v, args.Error(1)
}

func (m *MockPosts) page(args mock.Arguments) (*pagination.Page[entity.PostView], error) {
	p, _ := args.Get(0).(*pagination.Page[entity.PostView])
	return p, args.Error(1)
}

func (m *MockPosts) Create(ctx context.Context, owner primitive.ObjectID, in application.CreatePostInput) (*entity.PostView, error) {
	return m.view(m.Called(ctx, owner, in))
}

func (m *MockPosts) Get(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*entity.PostView, error) {
	return m.view(m.Called(ctx, id, viewer))
}

func (m *MockPosts) All(ctx context.Context, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	return m.page(m.Called(ctx, viewer, opts))
}

func (m *MockPosts) ByUsername(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	return m.page(m.Called(ctx, username, viewer, opts))
}

func (m *MockPosts) Mine(ctx context.Context, id primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	return m.page(m.Called(ctx, id, opts))
}

func (m *MockPosts) UpdateDetails(ctx context.Context, actor, id primitive.ObjectID, in application.UpdatePostInput) (*entity.PostView, error) {
	return m.view(m.Called(ctx, actor, id, in))
}

func (m *MockPosts) UpdateImages(ctx context.Context, actor, id primitive.ObjectID, uploads []repo.Upload) (*entity.PostView, error) {
	return m.view(m.Called(ctx, actor, id, uploads))
}

func (m *MockPosts) Delete(ctx context.Context, actor, id primitive.ObjectID) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockLikes struct{ mock.Mock }

func (m *MockLikes) Toggle(ctx context.Context, actor, post primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, actor, post)
	return args.Bool(0), args.Error(1)
}

type MockFollows struct{ mock.Mock }

func (m *MockFollows) Toggle(ctx context.Context, actor, target primitive.ObjectID) (*application.FollowResult, error) {
	args := m.Called(ctx, actor, target)
	r, _ := args.Get(0).(*application.FollowResult)
	return r, args.Error(1)
}

func (m *MockFollows) Followers(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*application.FollowList, error) {
	args := m.Called(ctx, username, viewer, opts)
	l, _ := args.Get(0).(*application.FollowList)
	return l, args.Error(1)
}

func (m *MockFollows) Following(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*application.FollowList, error) {
	args := m.Called(ctx, username, viewer, opts)
	l, _ := args.Get(0).(*application.FollowList)
	return l, args.Error(1)
}
