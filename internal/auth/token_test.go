package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/career-compass/internal/domain"
)

const testSecret = "test-secret"

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Email: "ann@example.com",
		Role:  domain.RoleJobSeeker,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	token, expiresAt, err := codec.Encode(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, domain.RoleJobSeeker, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.Time.After(claims.IssuedAt.Time))
}

func TestEncodeRejectsMissingUserID(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	_, _, err := codec.Encode(&domain.User{Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, _, err = codec.Encode(nil)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestDecodeExpiredCredential(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	claims := &Claims{
		Email: "ann@example.com",
		Role:  domain.RoleJobSeeker,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	assert.ErrorIs(t, err, ErrExpiredCredential)
}

func TestDecodeDetectsTampering(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	token, _, err := codec.Encode(testUser())
	require.NoError(t, err)

	// Flip one byte at every position; no mutation may decode.
	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		_, err := codec.Decode(string(mutated))
		assert.ErrorIs(t, err, ErrMalformedCredential, "mutation at byte %d accepted", i)
	}
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	other := NewTokenCodec("other-secret", 60)

	token, _, err := other.Encode(testUser())
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrMalformedCredential)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Decode(input)
		assert.ErrorIs(t, err, ErrMalformedCredential)
	}
}
