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

// CoverLettersHandler manages cover letter endpoints.
type CoverLettersHandler struct {
	service *service.DocumentService
}

// NewCoverLettersHandler constructs handler.
func NewCoverLettersHandler(documentService *service.DocumentService) *CoverLettersHandler {
	return &CoverLettersHandler{service: documentService}
}

// Create POST /api/cover-letters.
func (h *CoverLettersHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCoverLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	letter, err := h.service.CreateCoverLetter(c.Context(), identity.UserID, req.JobID, req.Title, req.Content, domain.SourceManual)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"cover_letter": dto.CoverLetterFromDomain(letter)})
}

// List GET /api/cover-letters.
func (h *CoverLettersHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	letters, err := h.service.ListCoverLetters(c.Context(), identity.UserID, queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.CoverLetterResponse, 0, len(letters))
	for i := range letters {
		items = append(items, dto.CoverLetterFromDomain(&letters[i]))
	}
	return c.JSON(fiber.Map{"cover_letters": items})
}

// Get GET /api/cover-letters/:id.
func (h *CoverLettersHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	letter, err := h.service.GetCoverLetter(c.Context(), identity.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cover_letter": dto.CoverLetterFromDomain(letter)})
}

// Update PUT /api/cover-letters/:id.
func (h *CoverLettersHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateCoverLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	letter, err := h.service.UpdateCoverLetter(c.Context(), identity.UserID, c.Params("id"), req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"cover_letter": dto.CoverLetterFromDomain(letter)})
}

// Delete DELETE /api/cover-letters/:id.
func (h *CoverLettersHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteCoverLetter(c.Context(), identity.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Cover letter deleted"})
}
