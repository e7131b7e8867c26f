package application

import (
	"context"
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	repo "github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

type FollowService struct {
	Follows repo.FollowRepository
	Users   repo.UserRepository
}

func NewFollowService(follows repo.FollowRepository, users repo.UserRepository) *FollowService {
	return &FollowService{Follows: follows, Users: users}
}

type FollowResult struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followersCount"`
}

// Toggle follows or unfollows target. The target must exist and differ from
// actor.
func (s *FollowService) Toggle(ctx context.Context, actor, target primitive.ObjectID) (*FollowResult, error) {
	if _, err := s.Users.GetByID(ctx, target); err != nil {
		return nil, err
	}
	if actor == target {
		return nil, apperror.Unprocessable("You cannot follow yourself")
	}
	following, err := s.Follows.Toggle(ctx, actor, target)
	if err != nil {
		return nil, err
	}
	followers, _, err := s.Follows.Counts(ctx, target)
	if err != nil {
		return nil, err
	}
	return &FollowResult{Following: following, FollowersCount: followers}, nil
}

// FollowList is one page of a follower or following list together with the
// user it belongs to. It marshals as {user, ...page}.
type FollowList struct {
	User *entity.UserSummary
	Page *pagination.Page[entity.FollowUserView]
}

func (l FollowList) MarshalJSON() ([]byte, error) {
	out := l.Page.Fields()
	out["user"] = l.User
	return json.Marshal(out)
}

func (s *FollowService) Followers(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*FollowList, error) {
	opts.Labels = pagination.FollowerLabels
	return s.list(ctx, repo.Followers, username, viewer, opts)
}

func (s *FollowService) Following(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*FollowList, error) {
	opts.Labels = pagination.FollowingLabels
	return s.list(ctx, repo.Following, username, viewer, opts)
}

func (s *FollowService) list(ctx context.Context, side repo.FollowSide, username string, viewer *primitive.ObjectID, opts pagination.Options) (*FollowList, error) {
	user, err := s.Users.SummaryByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, err
	}
	page, err := s.Follows.List(ctx, side, user.ID, viewer, opts)
	if err != nil {
		return nil, err
	}
	return &FollowList{User: user, Page: page}, nil
}
