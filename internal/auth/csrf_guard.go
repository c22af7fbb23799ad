package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

// CSRFGuard enforces the double-submit check on routes that change state
// before a session exists, such as login. Protected routes get the same
// check from the session middleware.
func CSRFGuard(cookies *CookieWriter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !stateChanging(c.Method()) {
			return c.Next()
		}
		if !CSRFMatch(c.Get(CSRFHeaderName), c.Cookies(cookies.CSRFCookieName())) {
			return apperrors.NewCSRFMismatch()
		}
		return c.Next()
	}
}
