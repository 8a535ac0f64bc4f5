package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"sociopedia/internal/domain"
	"sociopedia/internal/repository"
)

// UserService expone perfiles y amistades.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{logger: logger, users: users}
}

func (s *UserService) GetUser(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, ErrInvalidInput
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("get user failed", zap.Error(err), zap.String("user_id", id))
		}
		return domain.User{}, storeError(err)
	}
	return user, nil
}

func (s *UserService) ListFriends(ctx context.Context, id string) ([]domain.Friend, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}
	users, err := s.users.ListFriends(ctx, id)
	if err != nil {
		s.logger.Error("list friends failed", zap.Error(err), zap.String("user_id", id))
		return nil, storeError(err)
	}
	friends := make([]domain.Friend, 0, len(users))
	for _, u := range users {
		friends = append(friends, u.AsFriend())
	}
	return friends, nil
}

// ToggleFriend agrega o quita una amistad. Solo el propio usuario puede modificarla.
func (s *UserService) ToggleFriend(ctx context.Context, actorID, userID, friendID string) ([]domain.Friend, error) {
	userID = strings.TrimSpace(userID)
	friendID = strings.TrimSpace(friendID)
	if userID == "" || friendID == "" || userID == friendID {
		return nil, ErrInvalidInput
	}
	if actorID != userID {
		return nil, ErrForbidden
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(ctx, friendID); err != nil {
		return nil, err
	}

	added, err := s.users.ToggleFriend(ctx, userID, friendID)
	if err != nil {
		s.logger.Error("toggle friend failed", zap.Error(err), zap.String("user_id", userID), zap.String("friend_id", friendID))
		return nil, storeError(err)
	}
	s.logger.Debug("friendship toggled", zap.String("user_id", userID), zap.String("friend_id", friendID), zap.Bool("added", added))

	return s.ListFriends(ctx, userID)
}
