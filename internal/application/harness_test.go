package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	"github.com/oksasatya/vibhive/pkg/helpers"
	"github.com/oksasatya/vibhive/pkg/mailer/templates"
)

func init() {
	helpers.PasswordCost = bcrypt.MinCost
}

type app struct {
	db      *memDB
	images  *memImages
	jobs    *recordingPublisher
	search  *recordingSearch
	users   *UserService
	posts   *PostService
	likes   *LikeService
	follows *FollowService
}

func newApp(t *testing.T) *app {
	t.Helper()
	db := newMemDB()
	a := &app{db: db, images: &memImages{}, jobs: &recordingPublisher{}, search: &recordingSearch{}}
	logger := helpers.NewNopLogger()
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	a.users = NewUserService(memUsers{db}, memFollows{db}, a.images, jwt, logger)
	a.users.Jobs = a.jobs
	a.users.Search = a.search
	a.users.Brand = templates.Brand{AppName: "VibHive"}
	a.posts = NewPostService(memPosts{db}, memLikes{db}, memUsers{db}, a.images, logger, 4)
	a.likes = NewLikeService(memLikes{db}, memPosts{db})
	a.follows = NewFollowService(memFollows{db}, memUsers{db})
	return a
}

func (a *app) register(t *testing.T, username string) *entity.User {
	t.Helper()
	av := upload(username + ".png")
	u, err := a.users.Register(context.Background(), RegisterInput{
		FullName: username + " Doe",
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
		Avatar:   &av,
	})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }

func idPtr(id primitive.ObjectID) *primitive.ObjectID { return &id }
