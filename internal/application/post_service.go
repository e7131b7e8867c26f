package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/vibhive/internal/domain/entity"
	repo "github.com/oksasatya/vibhive/internal/domain/repository"
	"github.com/oksasatya/vibhive/internal/infrastructure/storage"
	"github.com/oksasatya/vibhive/pkg/apperror"
	"github.com/oksasatya/vibhive/pkg/pagination"
)

const postFolder = "posts"

type PostService struct {
	Posts     repo.PostRepository
	Likes     repo.LikeRepository
	Users     repo.UserRepository
	Images    repo.ImageStore
	Logger    *logrus.Logger
	MaxImages int
}

func NewPostService(posts repo.PostRepository, likes repo.LikeRepository, users repo.UserRepository, images repo.ImageStore, logger *logrus.Logger, maxImages int) *PostService {
	return &PostService{
		Posts:     posts,
		Likes:     likes,
		Users:     users,
		Images:    images,
		Logger:    logger,
		MaxImages: maxImages,
	}
}

type CreatePostInput struct {
	Content string
	Tags    []string
	Images  []repo.Upload
}

// Create uploads every image and then writes the post. Nothing is written
// unless all uploads succeed.
func (s *PostService) Create(ctx context.Context, owner primitive.ObjectID, in CreatePostInput) (*entity.PostView, error) {
	content := strings.TrimSpace(in.Content)
	if err := s.checkImages(in.Images, "Please provide an image"); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, apperror.ValidationFailed("content", "Content is required")
	}

	stored, err := storage.PutAll(ctx, s.Images, postFolder, in.Images)
	if err != nil {
		return nil, apperror.Internal("error while uploading images", err)
	}

	p := &entity.Post{
		Content: content,
		Images:  toImages(stored),
		Tags:    NormalizeTags(in.Tags),
		Owner:   owner,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		discardImages(ctx, s.Images, s.Logger, imageKeys(p.Images)...)
		return nil, err
	}
	return s.Posts.View(ctx, p.ID, &owner)
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID, viewer *primitive.ObjectID) (*entity.PostView, error) {
	return s.Posts.View(ctx, id, viewer)
}

// All is the global feed, newest first.
func (s *PostService) All(ctx context.Context, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	opts.Labels = pagination.PostLabels
	return s.Posts.Feed(ctx, repo.PostFilter{}, viewer, opts)
}

func (s *PostService) ByUsername(ctx context.Context, username string, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	u, err := s.Users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, err
	}
	return s.byOwner(ctx, u.ID, viewer, opts)
}

func (s *PostService) Mine(ctx context.Context, userID primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	return s.byOwner(ctx, userID, &userID, opts)
}

func (s *PostService) byOwner(ctx context.Context, owner primitive.ObjectID, viewer *primitive.ObjectID, opts pagination.Options) (*pagination.Page[entity.PostView], error) {
	opts.Labels = pagination.PostLabels
	return s.Posts.Feed(ctx, repo.PostFilter{Owner: &owner}, viewer, opts)
}

type UpdatePostInput struct {
	Content *string
	// Tags replaces the tag set when non-nil.
	Tags []string
}

func (s *PostService) UpdateDetails(ctx context.Context, actor, id primitive.ObjectID, in UpdatePostInput) (*entity.PostView, error) {
	if in.Content == nil && in.Tags == nil {
		return nil, apperror.ValidationFailed("", "At least one of content or tags is required")
	}
	var content *string
	if in.Content != nil {
		c := strings.TrimSpace(*in.Content)
		if c == "" {
			return nil, apperror.ValidationFailed("content", "content cannot be empty")
		}
		content = &c
	}
	var tags []string
	if in.Tags != nil {
		tags = NormalizeTags(in.Tags)
	}

	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	if err := s.Posts.UpdateDetails(ctx, id, content, tags); err != nil {
		return nil, err
	}
	return s.Posts.View(ctx, id, &actor)
}

// UpdateImages replaces the post's images. The new set is uploaded first;
// the old objects are deleted only after the post points at the new ones.
func (s *PostService) UpdateImages(ctx context.Context, actor, id primitive.ObjectID, uploads []repo.Upload) (*entity.PostView, error) {
	if err := s.checkImages(uploads, "Please provide images to update"); err != nil {
		return nil, err
	}
	post, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	stored, err := storage.PutAll(ctx, s.Images, postFolder, uploads)
	if err != nil {
		return nil, apperror.Internal("error while uploading images", err)
	}
	images := toImages(stored)
	if err := s.Posts.ReplaceImages(ctx, id, images); err != nil {
		discardImages(ctx, s.Images, s.Logger, imageKeys(images)...)
		return nil, err
	}
	discardImages(ctx, s.Images, s.Logger, imageKeys(post.Images)...)
	return s.Posts.View(ctx, id, &actor)
}

// Delete removes an owned post, its stored images and its likes. Each image
// is requested for deletion exactly once. Once the post is gone the delete
// has succeeded; a failed likes cascade is only logged.
func (s *PostService) Delete(ctx context.Context, actor, id primitive.ObjectID) error {
	post, err := s.Posts.DeleteOwned(ctx, id, actor)
	if err != nil {
		return err
	}
	entry := s.Logger.WithFields(logrus.Fields{"post_id": post.ID.Hex(), "images": len(post.Images)})
	discardImages(ctx, s.Images, s.Logger, imageKeys(post.Images)...)
	if _, err := s.Likes.DeleteByPost(ctx, post.ID); err != nil {
		entry.WithError(err).Warn("delete likes of removed post")
	}
	entry.Info("post deleted")
	return nil
}

func (s *PostService) owned(ctx context.Context, actor, id primitive.ObjectID) (*entity.Post, error) {
	post, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Owner != actor {
		return nil, apperror.Forbidden("You are not allowed to modify this post")
	}
	return post, nil
}

func (s *PostService) checkImages(uploads []repo.Upload, missing string) error {
	if len(uploads) == 0 {
		return apperror.ValidationFailed("images", missing)
	}
	if s.MaxImages > 0 && len(uploads) > s.MaxImages {
		return apperror.ValidationFailed("images", "too many images")
	}
	return nil
}
