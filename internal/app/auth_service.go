package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// UserStore is the credential-store contract the auth services consume.
// *repository.UserRepository satisfies it; tests substitute map-backed
// fakes.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
}

// EventPublisher delivers audit events to the broker. Publishing is
// best-effort: callers must not fail a request on a publish error.
type EventPublisher interface {
	Publish(ctx context.Context, event model.AuditEvent) error
}

type AuthService struct {
	users  UserStore
	events EventPublisher
}

type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	VerifyPassword string
}

func NewAuthService(users UserStore, events EventPublisher) *AuthService {
	return &AuthService{users: users, events: events}
}

// Register validates the input, hashes the password and persists the
// user. Uniqueness of username and email is ultimately enforced by the
// store's unique indexes, so a racing duplicate insert still fails.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if username == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}
	if input.Password != input.VerifyPassword {
		return nil, ErrInvalidInput
	}

	if err := s.checkAvailable(ctx, username, ErrUsernameExists); err != nil {
		return nil, err
	}
	if err := s.checkAvailable(ctx, email, ErrEmailExists); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	if s.events != nil {
		_ = s.events.Publish(ctx, model.AuditEvent{
			Action:   model.ActionUserRegistered,
			EntityID: user.ID,
			ActorID:  user.ID,
			Detail:   user.Username,
		})
	}
	return user, nil
}

// Authenticate resolves the identifier as a username or email and
// verifies the password. Every failure collapses to ErrInvalidCredential
// so callers cannot tell an unknown user from a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredential
	}
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	if !s.VerifyPassword(user, password) {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

// VerifyPassword reports whether candidate matches the stored hash.
// bcrypt embeds the per-user salt and compares in constant time.
func (s *AuthService) VerifyPassword(user *model.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate)) == nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) checkAvailable(ctx context.Context, identifier string, taken error) error {
	_, err := s.users.GetByIdentifier(ctx, identifier)
	if err == nil {
		return taken
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
