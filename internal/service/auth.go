package service

import (
	"context"
	"errors"

	"github.com/myevents/myevents-go/internal/crypto"
	"github.com/myevents/myevents-go/internal/model"
	"github.com/myevents/myevents-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInactiveUser       = errors.New("inactive user")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// UserRepository is the storage contract the auth service depends on.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	users  UserRepository
	tokens *crypto.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepository, tokens *crypto.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new user account. New accounts are active and never
// superusers.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

// Login authenticates a user and returns an access/refresh token pair
// bound to the user id as subject.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenPair{}, ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.TokenPair{}, err
	}
	if !match {
		return model.TokenPair{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return model.TokenPair{}, ErrInactiveUser
	}

	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.AccessTokenResponse, error) {
	claims, err := s.tokens.Validate(refreshToken, crypto.TokenTypeRefresh)
	if err != nil {
		return model.AccessTokenResponse{}, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AccessTokenResponse{}, ErrInvalidToken
		}
		return model.AccessTokenResponse{}, err
	}
	if !user.IsActive {
		return model.AccessTokenResponse{}, ErrInactiveUser
	}

	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return model.AccessTokenResponse{}, err
	}

	return model.AccessTokenResponse{AccessToken: access, TokenType: "bearer"}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

// SetActive toggles a user's active flag.
func (s *AuthService) SetActive(ctx context.Context, userID int64, active bool) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	user.IsActive = active
	if err := s.users.Update(ctx, user); err != nil {
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}
