package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"streamify/internal/auth"
	"streamify/internal/models"
	"streamify/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserHook runs after a user is created or its profile changes. Hooks are
// best-effort: failures are logged and never propagated to the caller.
type UserHook func(ctx context.Context, user *models.User) error

type AuthService struct {
	users repositories.UserRepository
	hooks []UserHook
}

func NewAuthService(users repositories.UserRepository, hooks ...UserHook) *AuthService {
	return &AuthService{users: users, hooks: hooks}
}

// Signup creates an account with a hashed credential and a randomly assigned
// avatar, then fires the post-creation hooks.
func (s *AuthService) Signup(ctx context.Context, email, password, fullName string) (*models.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	avatar := fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", rand.IntN(100)+1)

	user, err := s.users.Create(ctx, email, hash, fullName, avatar)
	if err != nil {
		return nil, err
	}

	s.runHooks(ctx, user)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// CompleteOnboarding sets the profile fields, flips the onboarded flag and
// re-syncs the user with downstream collaborators.
func (s *AuthService) CompleteOnboarding(ctx context.Context, userID int64, profile models.OnboardingProfile) (*models.User, error) {
	user, err := s.users.CompleteOnboarding(ctx, userID, profile)
	if err != nil {
		return nil, err
	}

	s.runHooks(ctx, user)
	return user, nil
}

func (s *AuthService) runHooks(ctx context.Context, user *models.User) {
	for _, hook := range s.hooks {
		if err := hook(ctx, user); err != nil {
			log.Printf("warning: user hook failed for user %d: %v", user.ID, err)
		}
	}
}
