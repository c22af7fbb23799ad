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

// ResumesHandler manages resume endpoints.
type ResumesHandler struct {
	service *service.DocumentService
}

// NewResumesHandler constructs handler.
func NewResumesHandler(documentService *service.DocumentService) *ResumesHandler {
	return &ResumesHandler{service: documentService}
}

// Create POST /api/resumes.
func (h *ResumesHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	resume, err := h.service.CreateResume(c.Context(), identity.UserID, req.Title, req.Content, domain.SourceManual)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"resume": dto.ResumeFromDomain(resume)})
}

// List GET /api/resumes.
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	resumes, err := h.service.ListResumes(c.Context(), identity.UserID, queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		return err
	}
	items := make([]dto.ResumeResponse, 0, len(resumes))
	for i := range resumes {
		items = append(items, dto.ResumeFromDomain(&resumes[i]))
	}
	return c.JSON(fiber.Map{"resumes": items})
}

// Get GET /api/resumes/:id.
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	resume, err := h.service.GetResume(c.Context(), identity.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"resume": dto.ResumeFromDomain(resume)})
}

// Update PUT /api/resumes/:id.
func (h *ResumesHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	resume, err := h.service.UpdateResume(c.Context(), identity.UserID, c.Params("id"), req.Title, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"resume": dto.ResumeFromDomain(resume)})
}

// Delete DELETE /api/resumes/:id.
func (h *ResumesHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteResume(c.Context(), identity.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Resume deleted"})
}
