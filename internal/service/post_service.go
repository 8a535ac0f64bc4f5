package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sociopedia/internal/domain"
	"sociopedia/internal/repository"
)

// PostService coordina publicaciones y likes.
type PostService struct {
	logger *zap.Logger
	users  repository.UserRepository
	posts  repository.PostRepository
	now    func() time.Time
}

func NewPostService(logger *zap.Logger, users repository.UserRepository, posts repository.PostRepository) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{logger: logger, users: users, posts: posts, now: time.Now}
}

type CreatePostInput struct {
	UserID      string
	Description string
	PicturePath string
}

func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (domain.Post, error) {
	description := strings.TrimSpace(input.Description)
	picturePath := strings.TrimSpace(input.PicturePath)
	if strings.TrimSpace(input.UserID) == "" || (description == "" && picturePath == "") {
		return domain.Post{}, ErrInvalidInput
	}

	author, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("get post author failed", zap.Error(err), zap.String("user_id", input.UserID))
		}
		return domain.Post{}, storeError(err)
	}

	post := domain.Post{
		ID:              uuid.NewString(),
		UserID:          author.ID,
		FirstName:       author.FirstName,
		LastName:        author.LastName,
		Location:        author.Location,
		Description:     description,
		PicturePath:     picturePath,
		UserPicturePath: author.PicturePath,
		Likes:           []string{},
		CreatedAt:       s.now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		s.logger.Error("create post failed", zap.Error(err), zap.String("user_id", author.ID))
		return domain.Post{}, storeError(err)
	}
	return post, nil
}

func (s *PostService) Feed(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		s.logger.Error("list feed failed", zap.Error(err))
		return nil, storeError(err)
	}
	return posts, nil
}

func (s *PostService) UserPosts(ctx context.Context, userID string) ([]domain.Post, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	posts, err := s.posts.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("list user posts failed", zap.Error(err), zap.String("user_id", userID))
		return nil, storeError(err)
	}
	return posts, nil
}

func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (domain.Post, error) {
	if strings.TrimSpace(postID) == "" || strings.TrimSpace(userID) == "" {
		return domain.Post{}, ErrInvalidInput
	}
	if _, err := s.posts.ToggleLike(ctx, postID, userID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("toggle like failed", zap.Error(err), zap.String("post_id", postID))
		}
		return domain.Post{}, storeError(err)
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return domain.Post{}, storeError(err)
	}
	return post, nil
}
