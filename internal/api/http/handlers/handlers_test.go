package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/career-compass/internal/api/http"
	"github.com/spec-kit/career-compass/internal/api/http/handlers"
	"github.com/spec-kit/career-compass/internal/auth"
	"github.com/spec-kit/career-compass/internal/config"
	"github.com/spec-kit/career-compass/internal/observability"
	"github.com/spec-kit/career-compass/internal/persistence"
	"github.com/spec-kit/career-compass/internal/service"
	"github.com/spec-kit/career-compass/internal/testutil"
)

const csrfCookieName = "csrf_token"

type stubGenerator struct {
	text string

	lastPrompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	return g.text, nil
}

func newTestApp(t *testing.T) (*fiber.App, *stubGenerator) {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "handler-test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
			SessionCookieName:     "session_token",
			CSRFCookieName:        csrfCookieName,
		},
	}
	logger := zap.NewNop()

	userRepo := testutil.NewUserRepo()
	jobRepo := testutil.NewJobRepo()
	resumeRepo := testutil.NewResumeRepo()
	letterRepo := testutil.NewCoverLetterRepo()

	revocation := testutil.NewRevoker()
	cookies := auth.NewCookieWriter(cfg.Auth)
	csrfIssuer := auth.NewCSRFIssuer()

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Revocation: revocation,
	})
	jobService := service.NewJobService(jobRepo)
	documentService := service.NewDocumentService(resumeRepo, letterRepo, jobRepo)
	generator := &stubGenerator{text: "Generated draft."}
	aiService := service.NewAIService(generator, documentService, jobService, logger)

	verifier := auth.NewVerifier(authService.Codec())
	sessionMiddleware := auth.NewSessionMiddleware(verifier, revocation, cookies, logger)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(&persistence.Postgres{}, &persistence.Redis{}),
		Auth:              handlers.NewAuthHandler(authService, csrfIssuer, cookies),
		Jobs:              handlers.NewJobsHandler(jobService),
		Resumes:           handlers.NewResumesHandler(documentService),
		CoverLetters:      handlers.NewCoverLettersHandler(documentService),
		AI:                handlers.NewAIHandler(aiService, authService),
		Admin:             handlers.NewAdminHandler(metrics),
		SessionMiddleware: sessionMiddleware,
		Cookies:           cookies,
	})
	return app, generator
}

type requestOption func(*http.Request)

func withBearer(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func withCSRF(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set(auth.CSRFHeaderName, token)
		r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, opts ...requestOption) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, _ := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"email":        email,
		"password":     "Abcdef1",
		"display_name": "Test User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    email,
		"password": "Abcdef1",
	}, withCSRF("login-csrf"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestCSRFTokenIssuance(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/auth/csrf-token", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	token, _ := body["csrfToken"].(string)
	assert.NotEmpty(t, token)

	var cookieValue string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == csrfCookieName {
			cookieValue = cookie.Value
		}
	}
	assert.Equal(t, token, cookieValue, "cookie must carry the same token as the body")

	// A second fetch rotates the pair.
	_, second := doJSON(t, app, "GET", "/api/auth/csrf-token", nil)
	assert.NotEqual(t, token, second["csrfToken"])
}

func TestRegisterSanitizedAndDuplicate(t *testing.T) {
	app, _ := newTestApp(t)

	payload := fiber.Map{"email": "a@b.com", "password": "Abcdef1", "display_name": "Ann"}

	req := httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(mustMarshal(t, payload)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, string(raw), "password", "sanitized user must not leak hash material")
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	user := body["user"].(map[string]any)
	assert.Equal(t, "a@b.com", user["email"])
	assert.Equal(t, "Ann", user["display_name"])
	assert.Equal(t, "job_seeker", user["role"])

	resp, body = doJSON(t, app, "POST", "/api/auth/register", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", body["error"])
}

func TestRegisterValidationMessages(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	msg, _ := body["error"].(string)
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "password must be at least 7 characters")
	assert.Contains(t, msg, "display_name is required")
}

func TestLoginFlowAndMe(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "ann@example.com")

	resp, body := doJSON(t, app, "GET", "/api/auth/me", nil, withBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", user["email"])
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)
	registerAndLogin(t, app, "ann@example.com")

	resp, body := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    "ann@example.com",
		"password": "WrongPass1",
	}, withCSRF("csrf"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Login failed", body["error"])
}

func TestLoginCSRFMismatch(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(mustMarshal(t, fiber.Map{
		"email":    "ann@example.com",
		"password": "Abcdef1",
	})))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.CSRFHeaderName, "header-value")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "different-cookie-value"})

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtectedRouteMissingCredential(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteMalformedCredential(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "GET", "/api/auth/me", nil, withBearer("not-a-real-token"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStateChangingRequiresCSRF(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "ann@example.com")

	resp, body := doJSON(t, app, "POST", "/api/jobs", fiber.Map{
		"company": "Acme", "title": "Go Developer",
	}, withBearer(token))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "CSRF token mismatch", body["error"])
}

func TestLogout(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "ann@example.com")

	resp, _ := doJSON(t, app, "POST", "/api/auth/logout", nil, withBearer(token), withCSRF("csrf"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cleared bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_token" && cookie.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must clear the session cookie")
}

func TestLogoutRevokesCredential(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "ann@example.com")

	resp, _ := doJSON(t, app, "GET", "/api/auth/me", nil, withBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/auth/logout", nil, withBearer(token), withCSRF("csrf"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The token is still well-formed and unexpired; revocation alone must
	// reject it.
	resp, body := doJSON(t, app, "GET", "/api/auth/me", nil, withBearer(token))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "session terminated", body["error"])

	// A fresh login works again.
	resp, _ = doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    "ann@example.com",
		"password": "Abcdef1",
	}, withCSRF("csrf"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminMetricsRequiresAdminRole(t *testing.T) {
	app, _ := newTestApp(t)

	seekerToken := registerAndLogin(t, app, "ann@example.com")
	resp, body := doJSON(t, app, "GET", "/api/admin/metrics", nil, withBearer(seekerToken))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "insufficient role", body["error"])

	resp, _ = doJSON(t, app, "POST", "/api/auth/register", fiber.Map{
		"email":        "ops@example.com",
		"password":     "Abcdef1",
		"display_name": "Ops",
		"role":         "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, loginBody := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    "ops@example.com",
		"password": "Abcdef1",
	}, withCSRF("csrf"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adminToken, _ := loginBody["token"].(string)
	require.NotEmpty(t, adminToken)

	resp, body = doJSON(t, app, "GET", "/api/admin/metrics", nil, withBearer(adminToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "requests")
	assert.Contains(t, body, "errors")
}

func TestJobCRUDAndOwnership(t *testing.T) {
	app, _ := newTestApp(t)
	annToken := registerAndLogin(t, app, "ann@example.com")
	bobToken := registerAndLogin(t, app, "bob@example.com")

	resp, body := doJSON(t, app, "POST", "/api/jobs", fiber.Map{
		"company": "Acme",
		"title":   "Go Developer",
		"url":     "https://careers.acme.io/jobs/1",
	}, withBearer(annToken), withCSRF("csrf"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	job := body["job"].(map[string]any)
	jobID := job["id"].(string)
	assert.Equal(t, "SAVED", job["status"])
	assert.Equal(t, "https://logo.clearbit.com/careers.acme.io", job["logo_url"])

	// Owner reads it back.
	resp, _ = doJSON(t, app, "GET", "/api/jobs/"+jobID, nil, withBearer(annToken))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Another user sees 404, not 403, so existence is not revealed.
	resp, _ = doJSON(t, app, "GET", "/api/jobs/"+jobID, nil, withBearer(bobToken))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Status moves stamp applied_at.
	resp, body = doJSON(t, app, "PUT", "/api/jobs/"+jobID, fiber.Map{
		"status": "APPLIED",
	}, withBearer(annToken), withCSRF("csrf"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := body["job"].(map[string]any)
	assert.Equal(t, "APPLIED", updated["status"])
	assert.NotEmpty(t, updated["applied_at"])

	resp, _ = doJSON(t, app, "DELETE", "/api/jobs/"+jobID, nil, withBearer(bobToken), withCSRF("csrf"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, "DELETE", "/api/jobs/"+jobID, nil, withBearer(annToken), withCSRF("csrf"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResumeCRUD(t *testing.T) {
	app, _ := newTestApp(t)
	token := registerAndLogin(t, app, "ann@example.com")

	resp, body := doJSON(t, app, "POST", "/api/resumes", fiber.Map{
		"title":   "General resume",
		"content": "# Ann",
	}, withBearer(token), withCSRF("csrf"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resume := body["resume"].(map[string]any)
	assert.Equal(t, "manual", resume["source"])
	resumeID := resume["id"].(string)

	resp, body = doJSON(t, app, "PUT", "/api/resumes/"+resumeID, fiber.Map{
		"title": "Backend resume",
	}, withBearer(token), withCSRF("csrf"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Backend resume", body["resume"].(map[string]any)["title"])

	resp, body = doJSON(t, app, "GET", "/api/resumes", nil, withBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["resumes"].([]any), 1)
}

func TestAIDraftEndpoints(t *testing.T) {
	app, gen := newTestApp(t)
	token := registerAndLogin(t, app, "ann@example.com")

	resp, body := doJSON(t, app, "POST", "/api/ai/resume", fiber.Map{
		"target_role": "Backend Engineer",
		"skills":      []string{"Go"},
	}, withBearer(token), withCSRF("csrf"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resume := body["resume"].(map[string]any)
	assert.Equal(t, "generated", resume["source"])
	assert.Equal(t, "Generated draft.", resume["content"])
	// The prompt carries the account's display name, not the email.
	assert.Contains(t, gen.lastPrompt, "Test User")
	assert.NotContains(t, gen.lastPrompt, "ann@example.com")

	resp, body = doJSON(t, app, "POST", "/api/ai/cover-letter", fiber.Map{
		"company": "Acme",
		"title":   "Go Developer",
	}, withBearer(token), withCSRF("csrf"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	letter := body["cover_letter"].(map[string]any)
	assert.Equal(t, "generated", letter["source"])

	// Neither a job reference nor inline company/title: validation failure.
	resp, _ = doJSON(t, app, "POST", "/api/ai/cover-letter", fiber.Map{
		"notes": "please",
	}, withBearer(token), withCSRF("csrf"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthLive(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}
