package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/career-compass/internal/domain"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

const identityKey = "auth_identity"

// CSRFHeaderName is the header clients echo the CSRF cookie through.
const CSRFHeaderName = "X-CSRF-Token"

// SessionMiddleware gates protected routes: it extracts the credential,
// runs the verifier, rejects revoked tokens, and stores the identity in
// request locals for downstream handlers.
type SessionMiddleware struct {
	verifier *Verifier
	revoked  TokenRevoker
	cookies  *CookieWriter
	logger   *zap.Logger
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(verifier *Verifier, revoked TokenRevoker, cookies *CookieWriter, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{verifier: verifier, revoked: revoked, cookies: cookies, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	identity, err := m.verifier.Verify(VerifyInput{
		AuthorizationHeader: c.Get(fiber.HeaderAuthorization),
		SessionCookie:       c.Cookies(m.cookies.SessionCookieName()),
		Method:              c.Method(),
		CSRFHeader:          c.Get(CSRFHeaderName),
		CSRFCookie:          c.Cookies(m.cookies.CSRFCookieName()),
	})
	if err != nil {
		return m.classify(c, err)
	}

	if m.revoked.IsRevoked(c.Context(), identity.TokenID) {
		m.logger.Info("rejected revoked credential", zap.String("user_id", identity.UserID))
		return apperrors.NewUnauthorized("session terminated")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// classify maps verifier failures to response statuses. Detail stays in the
// server log; the client sees only the classification.
func (m *SessionMiddleware) classify(c *fiber.Ctx, err error) error {
	m.logger.Info("authentication failed",
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.String("reason", err.Error()),
	)

	switch {
	case errors.Is(err, ErrMissingCredential):
		return apperrors.NewUnauthorizedCode(apperrors.CodeMissingCredential, "authentication required")
	case errors.Is(err, ErrMalformedCredential):
		return apperrors.NewUnauthorizedCode(apperrors.CodeMalformedCredential, "invalid session token")
	case errors.Is(err, ErrExpiredCredential):
		return apperrors.NewUnauthorizedCode(apperrors.CodeExpiredCredential, "session expired")
	case errors.Is(err, ErrCSRFMismatch):
		return apperrors.NewCSRFMismatch()
	}
	return apperrors.NewUnauthorized("authentication failed")
}

// RequireRole restricts a route to callers holding one of the given roles.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
