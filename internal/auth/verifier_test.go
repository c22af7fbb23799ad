package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/career-compass/internal/domain"
)

func issueCredential(t *testing.T, codec *TokenCodec) string {
	t.Helper()
	token, _, err := codec.Encode(testUser())
	require.NoError(t, err)
	return token
}

func TestVerifyClassification(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	verifier := NewVerifier(codec)
	token := issueCredential(t, codec)

	tests := []struct {
		name    string
		input   VerifyInput
		wantErr error
	}{
		{
			name:    "no credential at all",
			input:   VerifyInput{Method: "GET"},
			wantErr: ErrMissingCredential,
		},
		{
			name:    "malformed bearer prefix",
			input:   VerifyInput{AuthorizationHeader: "Token " + token, Method: "GET"},
			wantErr: ErrMissingCredential,
		},
		{
			name:    "bearer with empty token",
			input:   VerifyInput{AuthorizationHeader: "Bearer ", Method: "GET"},
			wantErr: ErrMissingCredential,
		},
		{
			name:    "garbage credential",
			input:   VerifyInput{AuthorizationHeader: "Bearer garbage", Method: "GET"},
			wantErr: ErrMalformedCredential,
		},
		{
			name: "csrf mismatch on state-changing method",
			input: VerifyInput{
				AuthorizationHeader: "Bearer " + token,
				Method:              "POST",
				CSRFHeader:          "aaa",
				CSRFCookie:          "bbb",
			},
			wantErr: ErrCSRFMismatch,
		},
		{
			name: "csrf absent on state-changing method",
			input: VerifyInput{
				AuthorizationHeader: "Bearer " + token,
				Method:              "DELETE",
			},
			wantErr: ErrCSRFMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifySuccessBearer(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	verifier := NewVerifier(codec)
	token := issueCredential(t, codec)

	identity, err := verifier.Verify(VerifyInput{
		AuthorizationHeader: "Bearer " + token,
		Method:              "GET",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "ann@example.com", identity.Email)
	assert.Equal(t, domain.RoleJobSeeker, identity.Role)
	assert.NotEmpty(t, identity.TokenID)
	assert.NotZero(t, identity.ExpiresAt)
}

func TestVerifyCookieFallback(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	verifier := NewVerifier(codec)
	token := issueCredential(t, codec)

	identity, err := verifier.Verify(VerifyInput{
		SessionCookie: token,
		Method:        "GET",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
}

func TestVerifyStateChangingWithMatchingPair(t *testing.T) {
	codec := NewTokenCodec(testSecret, 60)
	verifier := NewVerifier(codec)
	token := issueCredential(t, codec)

	identity, err := verifier.Verify(VerifyInput{
		AuthorizationHeader: "Bearer " + token,
		Method:              "POST",
		CSRFHeader:          "same-token",
		CSRFCookie:          "same-token",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
}

func TestStateChangingMethods(t *testing.T) {
	assert.True(t, stateChanging("POST"))
	assert.True(t, stateChanging("put"))
	assert.True(t, stateChanging("PATCH"))
	assert.True(t, stateChanging("DELETE"))
	assert.False(t, stateChanging("GET"))
	assert.False(t, stateChanging("HEAD"))
	assert.False(t, stateChanging("OPTIONS"))
}
