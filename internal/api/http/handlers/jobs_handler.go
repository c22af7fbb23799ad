package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/career-compass/internal/api/dto"
	"github.com/spec-kit/career-compass/internal/auth"
	"github.com/spec-kit/career-compass/internal/domain"
	"github.com/spec-kit/career-compass/internal/service"
	apperrors "github.com/spec-kit/career-compass/pkg/util"
)

// JobsHandler manages job application endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// Create POST /api/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	job, err := h.service.Create(c.Context(), identity.UserID, service.JobCreateInput{
		Company:  req.Company,
		Title:    req.Title,
		Location: req.Location,
		URL:      req.URL,
		LogoURL:  req.LogoURL,
		Status:   domain.JobStatus(req.Status),
		Notes:    req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"job": dto.JobFromDomain(job)})
}

// List GET /api/jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var statuses []domain.JobStatus
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			statuses = append(statuses, domain.JobStatus(strings.ToUpper(strings.TrimSpace(part))))
		}
	}
	var search *string
	if q := c.Query("q"); q != "" {
		search = &q
	}
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	jobs, err := h.service.List(c.Context(), identity.UserID, statuses, search, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, dto.JobFromDomain(&jobs[i]))
	}
	return c.JSON(fiber.Map{"jobs": items})
}

// Get GET /api/jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	job, err := h.service.Get(c.Context(), identity.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.JobFromDomain(job)})
}

// Update PUT /api/jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	input := service.JobUpdateInput{
		Company:  req.Company,
		Title:    req.Title,
		Location: req.Location,
		URL:      req.URL,
		LogoURL:  req.LogoURL,
		Notes:    req.Notes,
	}
	if req.Status != nil {
		status := domain.JobStatus(*req.Status)
		input.Status = &status
	}

	job, err := h.service.Update(c.Context(), identity.UserID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.JobFromDomain(job)})
}

// Delete DELETE /api/jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), identity.UserID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Job deleted"})
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	val := c.Query(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
