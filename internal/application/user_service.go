package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	repo "github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/helpers"
	"github.com/oksasatya/vibhive/pkg/mailer"
	"github.com/oksasatya/vibhive/pkg/mailer/templates"
)

const (
	avatarFolder = "avatars"
	coverFolder  = "covers"
)

// UserService handles accounts, sessions and profiles. Search and Jobs are
// optional; a nil value disables user search and outgoing email.
type UserService struct {
	Users   repo.UserRepository
	Follows repo.FollowRepository
	Images  repo.ImageStore
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger

	Search repo.UserSearch
	Jobs   JobPublisher
	Brand  templates.Brand
}

func NewUserService(users repo.UserRepository, follows repo.FollowRepository, images repo.ImageStore, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{
		Users:   users,
		Follows: follows,
		Images:  images,
		JWT:     jwt,
		Logger:  logger,
	}
}

type RegisterInput struct {
	FullName string
	Username string
	Email    string
	Password string
	Bio      string
	Location string
	DOB      *time.Time
	Avatar   *repo.Upload
}

// Register creates an account. The avatar is uploaded before the user is
// written and deleted again if the write fails.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.FullName == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, apperror.ValidationFailed("", "all fields are required")
	}
	if in.Avatar == nil {
		return nil, apperror.ValidationFailed("avtar", "avtar image is required")
	}

	exists, err := s.Users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("user already exist")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal("could not hash password", err)
	}

	avatar, err := s.Images.Put(ctx, avatarFolder, *in.Avatar)
	if err != nil {
		return nil, apperror.Internal("error while uploading avatar", err)
	}

	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = entity.DefaultLocation
	}
	u := &entity.User{
		FullName: in.FullName,
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Avatar:   avatar.URL,
		Bio:      strings.TrimSpace(in.Bio),
		DOB:      in.DOB,
		Location: location,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		discardImages(ctx, s.Images, s.Logger, avatar.Key)
		return nil, err
	}

	created, err := s.Users.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	s.index(ctx, created)
	s.enqueue(ctx, mailer.EmailJob{
		To:       created.Email,
		Template: templates.Welcome,
		Data:     templates.NewWelcomeData(s.Brand, created.FullName, created.Username, created.Email),
	})
	return created, nil
}

type LoginInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	User   *entity.User
	Tokens TokenPair
}

// Login authenticates by username or email and starts a session.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	login := strings.TrimSpace(in.Username)
	if login == "" {
		login = strings.TrimSpace(in.Email)
	}
	if login == "" {
		return nil, apperror.ValidationFailed("username", "username or email is required")
	}
	if in.Password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	u, err := s.Users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, err
	}
	if !helpers.CheckPassword(u.Password, in.Password) {
		return nil, apperror.Unauthorized("invalid user password")
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Tokens: pair}, nil
}

// Logout drops the stored refresh token, invalidating the session.
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	return s.Users.SetRefreshToken(ctx, userID, nil)
}

// Refresh rotates the session. The incoming token must verify and match the
// one stored on the user; any other outcome is unauthorized.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return TokenPair{}, apperror.Unauthorized("unauthorized request")
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, apperror.Unauthorized("invalid refresh token")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return TokenPair{}, apperror.Unauthorized("invalid refresh token")
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return TokenPair{}, apperror.Unauthorized("invalid refresh token")
		}
		return TokenPair{}, err
	}
	if u.RefreshToken == nil || *u.RefreshToken != refreshToken {
		return TokenPair{}, apperror.Unauthorized("refresh token is expired or used")
	}
	return s.issueTokens(ctx, u)
}

func (s *UserService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(helpers.TokenSubject{
		UserID:   u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	})
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.ID.Hex()})
		return TokenPair{}, apperror.Internal("Something went wrong while generating refresh and access token", err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID.Hex())
	if err != nil {
		helpers.LogError(s.Logger, "generate refresh token failed", err, logrus.Fields{"user_id": u.ID.Hex()})
		return TokenPair{}, apperror.Internal("Something went wrong while generating refresh and access token", err)
	}
	if err := s.Users.SetRefreshToken(ctx, u.ID, &refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return apperror.ValidationFailed("", "oldPassword and newPassword are required")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !helpers.CheckPassword(u.Password, oldPassword) {
		return apperror.Unauthorized("password is not correct")
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal("could not hash password", err)
	}
	if err := s.Users.SetPassword(ctx, userID, hash); err != nil {
		return err
	}
	s.enqueue(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: templates.PasswordChanged,
		Data:     templates.NewPasswordChangedData(s.Brand, u.FullName, u.Username, u.Email),
	})
	return nil
}

func (s *UserService) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*entity.User, error) {
	return s.Users.GetByID(ctx, userID)
}

type UpdateDetailsInput struct {
	Username *string
	Bio      *string
	Avatar   *repo.Upload
}

// UpdateDetails sets any of username, bio and avatar.
func (s *UserService) UpdateDetails(ctx context.Context, userID primitive.ObjectID, in UpdateDetailsInput) (*entity.User, error) {
	var patch repo.UserPatch
	if in.Username != nil {
		name := strings.ToLower(strings.TrimSpace(*in.Username))
		if name != "" {
			patch.Username = &name
		}
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		patch.Bio = &bio
	}
	if patch.IsEmpty() && in.Avatar == nil {
		return nil, apperror.ValidationFailed("", "At least one of username, bio, or avatar is required")
	}
	return s.updateWithImage(ctx, userID, patch, in.Avatar, avatarFolder, func(p *repo.UserPatch, url string) { p.Avatar = &url })
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID primitive.ObjectID, up *repo.Upload) (*entity.User, error) {
	if up == nil {
		return nil, apperror.ValidationFailed("avtar", "avtar image required")
	}
	return s.updateWithImage(ctx, userID, repo.UserPatch{}, up, avatarFolder, func(p *repo.UserPatch, url string) { p.Avatar = &url })
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, up *repo.Upload) (*entity.User, error) {
	if up == nil {
		return nil, apperror.ValidationFailed("coverImage", "cover image required")
	}
	return s.updateWithImage(ctx, userID, repo.UserPatch{}, up, coverFolder, func(p *repo.UserPatch, url string) { p.CoverImage = &url })
}

// updateWithImage uploads up (when set) into folder, lets set record its URL
// on the patch and applies it. A failed update deletes the new upload.
func (s *UserService) updateWithImage(ctx context.Context, userID primitive.ObjectID, patch repo.UserPatch, up *repo.Upload, folder string, set func(*repo.UserPatch, string)) (*entity.User, error) {
	var uploaded string
	if up != nil {
		img, err := s.Images.Put(ctx, folder, *up)
		if err != nil {
			return nil, apperror.Internal("error while uploading file", err)
		}
		uploaded = img.Key
		set(&patch, img.URL)
	}
	u, err := s.Users.Update(ctx, userID, patch)
	if err != nil {
		if uploaded != "" {
			discardImages(ctx, s.Images, s.Logger, uploaded)
		}
		return nil, err
	}
	s.index(ctx, u)
	return u, nil
}

// Profile returns username's profile as seen by viewer (nil when anonymous).
func (s *UserService) Profile(ctx context.Context, username string, viewer *primitive.ObjectID) (*entity.ProfileView, error) {
	p, err := s.Users.ProfileByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, err
	}
	if viewer != nil && *viewer != p.ID {
		p.IsFollowing, err = s.Follows.IsFollowing(ctx, *viewer, p.ID)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MyProfile is the caller's own profile; IsFollowing is always false.
func (s *UserService) MyProfile(ctx context.Context, userID primitive.ObjectID) (*entity.ProfileView, error) {
	return s.Users.ProfileByID(ctx, userID)
}

func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]entity.UserSummary, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.ValidationFailed("q", "search query is required")
	}
	if s.Search == nil {
		return []entity.UserSummary{}, nil
	}
	hits, err := s.Search.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Internal("user search failed", err)
	}
	return hits, nil
}

// index refreshes the search copy. The document store stays authoritative,
// so failures are only logged.
func (s *UserService) index(ctx context.Context, u *entity.User) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Index(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Warn("es index failed")
	}
}

func (s *UserService) enqueue(ctx context.Context, job mailer.EmailJob) {
	if s.Jobs == nil {
		return
	}
	if err := s.Jobs.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Warn("enqueue email failed")
	}
}
