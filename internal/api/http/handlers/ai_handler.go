package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/career-compass/internal/api/dto"
	"github.com/spec-kit/career-compass/internal/auth"
	"github.com/spec-kit/career-compass/internal/service"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

// AIHandler exposes AI-assisted drafting endpoints.
type AIHandler struct {
	service *service.AIService
	auth    *service.AuthService
}

// NewAIHandler constructs handler.
func NewAIHandler(aiService *service.AIService, authService *service.AuthService) *AIHandler {
	return &AIHandler{service: aiService, auth: authService}
}

// DraftResume POST /api/ai/resume.
func (h *AIHandler) DraftResume(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.DraftResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	user, err := h.auth.CurrentUser(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	resume, err := h.service.DraftResume(c.Context(), identity.UserID, service.ResumeDraftInput{
		DisplayName: user.DisplayName,
		TargetRole:  req.TargetRole,
		Experience:  req.Experience,
		Skills:      req.Skills,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"resume": dto.ResumeFromDomain(resume)})
}

// DraftCoverLetter POST /api/ai/cover-letter.
func (h *AIHandler) DraftCoverLetter(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.DraftCoverLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	hasJobRef := req.JobID != nil && *req.JobID != ""
	hasInline := strings.TrimSpace(req.Company) != "" && strings.TrimSpace(req.Title) != ""
	if !hasJobRef && !hasInline {
		return apperrors.NewValidationError("job_id or company and title required")
	}

	letter, err := h.service.DraftCoverLetter(c.Context(), identity.UserID, service.CoverLetterDraftInput{
		JobID:    req.JobID,
		ResumeID: req.ResumeID,
		Company:  req.Company,
		Title:    req.Title,
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"cover_letter": dto.CoverLetterFromDomain(letter)})
}
