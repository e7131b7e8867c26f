package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	repo "github.com/oksasatya/vibhive/internal/domain/repository"
)

type LikeService struct {
	Likes repo.LikeRepository
	Posts repo.PostRepository
}

func NewLikeService(likes repo.LikeRepository, posts repo.PostRepository) *LikeService {
	return &LikeService{Likes: likes, Posts: posts}
}

// Toggle likes or unlikes post for actor and reports the new state.
func (s *LikeService) Toggle(ctx context.Context, actor, post primitive.ObjectID) (bool, error) {
	if _, err := s.Posts.GetByID(ctx, post); err != nil {
		return false, err
	}
	return s.Likes.Toggle(ctx, post, actor)
}
