package app

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"todoapi/internal/model"
)

// TokenService issues and verifies signed, time-limited auth tokens.
// Tokens are HS256 JWTs carrying the user id; the TTL is fixed at
// issuance.
type TokenService struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type tokenClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

func NewTokenService(users UserStore, secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Tests use it to move past the
// token TTL without sleeping.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) Issue(user *model.User) (string, error) {
	issued := s.now()
	claims := tokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// Verify decodes the token, checks signature and expiry, and resolves
// the embedded user id against the store. Malformed encoding, a bad
// signature, an elapsed TTL and an unresolvable user all collapse to
// ErrInvalidToken so the transport layer reports a uniform 401.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*model.User, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}
