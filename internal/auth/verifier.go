package auth

import (
	"errors"
	"strings"

	"github.com/spec-kit/career-compass/internal/domain"
)

// Verifier failures beyond the codec's own classification.
var (
	ErrMissingCredential = errors.New("missing credential")
	ErrCSRFMismatch      = errors.New("csrf token mismatch")
)

// Identity is the authenticated caller, derived only from verified claims.
type Identity struct {
	UserID string
	Email  string
	Role   domain.UserRole
	// TokenID and ExpiresAt let callers revoke the credential on logout.
	TokenID   string
	ExpiresAt int64
}

// VerifyInput carries the request fields the verifier inspects. Extraction
// from the transport happens in the middleware so verification itself stays
// pure and I/O-free.
type VerifyInput struct {
	AuthorizationHeader string
	SessionCookie       string
	Method              string
	CSRFHeader          string
	CSRFCookie          string
}

// Verifier validates presented credentials. Stateless and safe for
// arbitrary concurrent use.
type Verifier struct {
	codec *TokenCodec
}

// NewVerifier constructs a verifier over the given codec.
func NewVerifier(codec *TokenCodec) *Verifier {
	return &Verifier{codec: codec}
}

// stateChanging reports whether the method requires CSRF proof.
func stateChanging(method string) bool {
	switch strings.ToUpper(method) {
	case "POST", "PUT", "PATCH", "DELETE":
		return true
	}
	return false
}

// Verify checks the credential and, for state-changing methods, the CSRF
// double-submit pair. Returns a classified error on any failure.
func (v *Verifier) Verify(in VerifyInput) (*Identity, error) {
	credential, err := extractCredential(in)
	if err != nil {
		return nil, err
	}

	claims, err := v.codec.Decode(credential)
	if err != nil {
		return nil, err
	}

	if stateChanging(in.Method) && !CSRFMatch(in.CSRFHeader, in.CSRFCookie) {
		return nil, ErrCSRFMismatch
	}

	identity := &Identity{
		UserID:  claims.UserID(),
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return identity, nil
}

// extractCredential pulls the token from the Authorization header, falling
// back to the session cookie for browser clients.
func extractCredential(in VerifyInput) (string, error) {
	if in.AuthorizationHeader != "" {
		parts := strings.SplitN(in.AuthorizationHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", ErrMissingCredential
		}
		return parts[1], nil
	}
	if in.SessionCookie != "" {
		return in.SessionCookie, nil
	}
	return "", ErrMissingCredential
}
