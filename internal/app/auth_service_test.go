package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/repository"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:       "alice",
		Email:          "alice@example.com",
		Password:       "correct-horse",
		VerifyPassword: "correct-horse",
	}
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil)

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.True(t, svc.VerifyPassword(user, "correct-horse"))
	assert.False(t, svc.VerifyPassword(user, "wrong-password"))
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing username", func(in *RegisterInput) { in.Username = "" }},
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"missing password", func(in *RegisterInput) { in.Password = "" }},
		{"password confirmation mismatch", func(in *RegisterInput) { in.VerifyPassword = "something-else" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newFakeUserStore(), nil)
			input := validRegisterInput()
			tt.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	input := validRegisterInput()
	input.Email = "other@example.com"
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	input := validRegisterInput()
	input.Username = "bob"
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestRegisterRacingDuplicateInsert(t *testing.T) {
	// The store-level unique index is the last line of defense when two
	// registrations race past the pre-checks.
	store := newFakeUserStore()
	store.createErr = repository.ErrDuplicateKey
	svc := NewAuthService(store, nil)

	_, err := svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRegisterPublishesAuditEvent(t *testing.T) {
	events := &recordingPublisher{}
	svc := NewAuthService(newFakeUserStore(), events)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, []string{"user.registered"}, events.actions())
}

func TestAuthenticate(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "alice", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("by email", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "alice@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}
