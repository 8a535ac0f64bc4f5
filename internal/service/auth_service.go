package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sociopedia/internal/domain"
	"sociopedia/internal/repository"
)

// AuthService orquesta registro y login sobre el Credential Store.
type AuthService struct {
	logger   *zap.Logger
	users    repository.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenService
	limiter  LoginRateLimiter
	validate *validator.Validate
	now      func() time.Time
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, hasher *PasswordHasher, tokens *TokenService, limiter LoginRateLimiter) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		logger:   logger,
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		limiter:  limiter,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

type RegisterInput struct {
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required"`
	PicturePath string
	Location    string
	Occupation  string
}

type RegisterResult struct {
	UserID string
	Token  string
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginResult struct {
	UserID string
	Email  string
	Token  string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	if s.users == nil || s.hasher == nil || s.tokens == nil {
		return RegisterResult{}, fmt.Errorf("%w: auth service not configured", ErrInternal)
	}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = normalizeEmail(input.Email)
	if err := s.validate.Struct(input); err != nil {
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return RegisterResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := s.now().UTC()
	user := domain.User{
		ID:            uuid.NewString(),
		Email:         input.Email,
		PasswordHash:  passwordHash,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		PicturePath:   strings.TrimSpace(input.PicturePath),
		Location:      strings.TrimSpace(input.Location),
		Occupation:    strings.TrimSpace(input.Occupation),
		ViewedProfile: rand.Intn(10000),
		Impressions:   rand.Intn(10000),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return RegisterResult{}, ErrDuplicateEmail
		}
		s.logger.Error("create user failed", zap.Error(err))
		return RegisterResult{}, storeError(err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err), zap.String("user_id", user.ID))
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return RegisterResult{UserID: user.ID, Token: token}, nil
}

// Login no distingue entre email inexistente y contraseña incorrecta.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	if s.users == nil || s.hasher == nil || s.tokens == nil {
		return LoginResult{}, fmt.Errorf("%w: auth service not configured", ErrInternal)
	}

	input.Email = normalizeEmail(input.Email)
	if err := s.validate.Struct(input); err != nil {
		return LoginResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, input.Email) {
		return LoginResult{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.VerifyDummy(input.Password)
			return LoginResult{}, ErrInvalidCredentials
		}
		s.logger.Error("get user by email failed", zap.Error(err))
		return LoginResult{}, storeError(err)
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash unusable", zap.Error(err), zap.String("user_id", user.ID))
		return LoginResult{}, ErrInvalidCredentials
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("issue token failed", zap.Error(err), zap.String("user_id", user.ID))
		return LoginResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, input.Email)
	}

	return LoginResult{UserID: user.ID, Email: user.Email, Token: token}, nil
}
