package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/career-compass/internal/domain"
)

// Classified codec failures. Callers branch on these to pick a response
// status, so the codec never returns raw jwt library errors.
var (
	ErrInvalidClaims       = errors.New("invalid claims: user id required")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrExpiredCredential   = errors.New("expired credential")
)

// Claims describes the session credential payload.
type Claims struct {
	Email string          `json:"email"`
	Role  domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the credential subject.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenCodec encodes and decodes signed session credentials. It performs
// pure computation over a fixed secret and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec with the given signing secret and token TTL.
func NewTokenCodec(secret string, ttlMinutes int) *TokenCodec {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenCodec{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// TTL returns the configured credential lifetime.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Encode signs a credential for the user. Fails with ErrInvalidClaims when
// the user id is empty.
func (tc *TokenCodec) Encode(user *domain.User) (string, time.Time, error) {
	if user == nil || user.ID == "" {
		return "", time.Time{}, ErrInvalidClaims
	}

	now := time.Now()
	expiresAt := now.Add(tc.ttl)
	claims := &Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode verifies the signature and expiry and returns the claims. Failures
// are classified as ErrMalformedCredential or ErrExpiredCredential.
func (tc *TokenCodec) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tc.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, ErrMalformedCredential
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformedCredential
	}
	if claims.Subject == "" {
		return nil, ErrMalformedCredential
	}
	return claims, nil
}
