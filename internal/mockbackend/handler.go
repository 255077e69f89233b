package mockbackend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skincare-client/internal/analyses"
	"skincare-client/internal/shared/server/middleware"
	"skincare-client/internal/shared/server/respond"
)

// Handler serves the backend analysis API from a MemoryRepo.
type Handler struct {
	Repo    *MemoryRepo
	token   string
	limiter *pollLimiter
}

// Option configures a Handler.
type Option func(*Handler)

// WithToken requires "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(h *Handler) { h.token = strings.TrimSpace(token) }
}

// WithPollWindow rejects reads of one analysis by one client closer together than window.
func WithPollWindow(window time.Duration, now func() time.Time) Option {
	return func(h *Handler) { h.limiter = newPollLimiter(window, now) }
}

// NewHandler constructs a Handler.
func NewHandler(repo *MemoryRepo, opts ...Option) *Handler {
	h := &Handler{Repo: repo}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.Use(h.requireToken)
	rg.POST("/analyses", h.createAnalysis)
	rg.GET("/analyses/latest", h.getLatest)
	rg.GET("/analyses/:id", h.getAnalysis)
}

// NewRouter returns a gin engine serving the handler under /api/v1.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func (h *Handler) requireToken(c *gin.Context) {
	if h.token == "" {
		c.Next()
		return
	}
	if c.GetHeader("Authorization") != "Bearer "+h.token {
		respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
		return
	}
	c.Next()
}

func (h *Handler) createAnalysis(c *gin.Context) {
	script := DefaultScript()
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&script); err != nil {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid script", nil)
			return
		}
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Repo.Create(ctx, script)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to create analysis", nil)
		return
	}
	c.Set("analysisId", analysis.ID)
	respond.JSON(c, http.StatusAccepted, gin.H{
		"analysisId": analysis.ID,
		"status":     analysis.Status,
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Param("id"))
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "analysis id is required", nil)
		return
	}
	if !h.limiter.Allow(c.ClientIP(), analysisID) {
		c.Header("Retry-After", strconv.Itoa(h.limiter.RetryAfterSeconds()))
		respond.Error(c, http.StatusTooManyRequests, respond.CodeRateLimited, "polling too fast", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Repo.Advance(ctx, analysisID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, render(analysis))
}

func (h *Handler) getLatest(c *gin.Context) {
	analysis, err := h.Repo.Latest(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.OK(c, render(analysis))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to fetch analysis", nil)
	}
}

// render uses the backend's nested shape: payload under "result" once
// completed, camel case error message once failed.
func render(a analyses.Analysis) gin.H {
	resp := gin.H{
		"id":         a.ID,
		"status":     a.Status,
		"created_at": a.CreatedAt,
	}
	switch a.Status {
	case analyses.StatusCompleted:
		resp["result"] = gin.H{
			"metrics":  a.Metrics,
			"routine":  a.Routine,
			"products": a.Products,
		}
	case analyses.StatusFailed:
		resp["errorMessage"] = a.ErrorMessage
	}
	return resp
}
