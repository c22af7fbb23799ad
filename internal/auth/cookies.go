package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/career-compass/internal/config"
)

// CookieWriter issues and clears the session and CSRF cookies. The session
// cookie is HttpOnly; the CSRF cookie must stay readable by page scripts so
// the client can echo it in the X-CSRF-Token header.
type CookieWriter struct {
	cfg config.AuthConfig
}

// NewCookieWriter builds a writer from auth config.
func NewCookieWriter(cfg config.AuthConfig) *CookieWriter {
	return &CookieWriter{cfg: cfg}
}

// SetSession attaches the session credential cookie.
func (w *CookieWriter) SetSession(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     w.cfg.SessionCookieName,
		Value:    token,
		Expires:  expiresAt,
		Path:     "/",
		HTTPOnly: true,
		Secure:   w.cfg.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSession expires the session cookie.
func (w *CookieWriter) ClearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     w.cfg.SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HTTPOnly: true,
		Secure:   w.cfg.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SetCSRF attaches the double-submit CSRF cookie.
func (w *CookieWriter) SetCSRF(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     w.cfg.CSRFCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: false,
		Secure:   w.cfg.SecureCookies,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SessionCookieName returns the configured session cookie name.
func (w *CookieWriter) SessionCookieName() string {
	return w.cfg.SessionCookieName
}

// CSRFCookieName returns the configured CSRF cookie name.
func (w *CookieWriter) CSRFCookieName() string {
	return w.cfg.CSRFCookieName
}
