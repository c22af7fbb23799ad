package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/career-compass/internal/api/dto"
	"github.com/spec-kit/career-compass/internal/auth"
	"github.com/spec-kit/career-compass/internal/domain"
	"github.com/spec-kit/career-compass/internal/service"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

// AuthHandler exposes the session endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	csrf    *auth.CSRFIssuer
	cookies *auth.CookieWriter
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, csrf *auth.CSRFIssuer, cookies *auth.CookieWriter) *AuthHandler {
	return &AuthHandler{auth: authService, csrf: csrf, cookies: cookies}
}

// CSRFToken handles GET /api/auth/csrf-token. Each fetch rotates the
// double-submit pair.
func (h *AuthHandler) CSRFToken(c *fiber.Ctx) error {
	token, err := h.csrf.Issue()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	h.cookies.SetCSRF(c, token)
	return c.JSON(dto.CSRFTokenResponse{CSRFToken: token})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	user, err := h.auth.Register(c.Context(), req.Email, req.Password, req.DisplayName, domain.UserRole(req.Role))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"user": dto.SanitizeUser(user)})
}

// Login handles POST /api/auth/login. The CSRF guard runs before this.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	user, token, expiresAt, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.SetSession(c, token, expiresAt)
	return c.JSON(dto.LoginResponse{
		Message:   "Login successful",
		User:      dto.SanitizeUser(user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// Logout handles POST /api/auth/logout (protected).
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.Context(), identity); err != nil {
		return err
	}
	h.cookies.ClearSession(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /api/auth/me (protected).
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.auth.CurrentUser(c.Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.SanitizeUser(user)})
}
