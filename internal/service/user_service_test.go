package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestUserServiceGetUser(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "u1", "u1@x.com")
	svc := NewUserService(zap.NewNop(), repo)

	user, err := svc.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.GetUser(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserServiceToggleFriend_Symmetric(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "u1", "u1@x.com")
	seedUser(t, repo, "u2", "u2@x.com")
	svc := NewUserService(zap.NewNop(), repo)

	friends, err := svc.ToggleFriend(context.Background(), "u1", "u1", "u2")
	if err != nil {
		t.Fatalf("add friend: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != "u2" {
		t.Fatalf("expected u2 as friend, got %+v", friends)
	}

	reverse, err := svc.ListFriends(context.Background(), "u2")
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(reverse) != 1 || reverse[0].ID != "u1" {
		t.Fatalf("expected friendship in both directions, got %+v", reverse)
	}

	friends, err = svc.ToggleFriend(context.Background(), "u1", "u1", "u2")
	if err != nil {
		t.Fatalf("remove friend: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("expected friendship removed, got %+v", friends)
	}
}

func TestUserServiceToggleFriend_Errors(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "u1", "u1@x.com")
	seedUser(t, repo, "u2", "u2@x.com")
	svc := NewUserService(zap.NewNop(), repo)
	ctx := context.Background()

	if _, err := svc.ToggleFriend(ctx, "u2", "u1", "u2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ToggleFriend(ctx, "u1", "u1", "u1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ToggleFriend(ctx, "u1", "u1", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserServiceListFriends_UnknownUser(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	if _, err := svc.ListFriends(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
