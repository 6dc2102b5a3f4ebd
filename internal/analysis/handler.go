package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/diffview"
	"aptly-backend/internal/shared/server/middleware"
	"aptly-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to per-user analysis sessions.
type Handler struct {
	Sessions *Sessions
}

// NewHandler constructs a Handler.
func NewHandler(sessions *Sessions) *Handler {
	return &Handler{Sessions: sessions}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.analyze)
	rg.GET("/analyses/current", h.current)
	rg.GET("/analyses/current/diff", h.diff)
	rg.POST("/analyses/current/cover-letter", h.coverLetter)
}

type analyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	record, err := h.Sessions.ForUser(userID).Analyze(c.Request.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		var valErr *ValidationError
		var genErr *GenerationError
		switch {
		case errors.As(err, &valErr):
			respond.Error(c, http.StatusBadRequest, "validation_error", valErr.Msg, nil)
		case errors.Is(err, ErrBusy):
			respond.Error(c, http.StatusConflict, "busy", "An analysis is already in progress.", nil)
		case errors.As(err, &genErr):
			respond.Error(c, http.StatusBadGateway, "generation_failed", genErr.Msg, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run analysis", nil)
		}
		return
	}

	respond.OK(c, record)
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	respond.OK(c, h.Sessions.ForUser(userID).Snapshot())
}

func (h *Handler) diff(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	record, err := h.Sessions.ForUser(userID).Current()
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "no analysis available", nil)
		return
	}

	respond.OK(c, gin.H{
		"segments": diffview.Render(record.OriginalResume, record.TailoredResumeText),
	})
}

type coverLetterRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) coverLetter(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	// Notes are optional; an empty body is fine.
	var req coverLetterRequest
	_ = c.ShouldBindJSON(&req)

	record, err := h.Sessions.ForUser(userID).GenerateCoverLetter(c.Request.Context(), req.Notes)
	if err != nil {
		var genErr *GenerationError
		switch {
		case errors.Is(err, ErrNoAnalysis):
			respond.Error(c, http.StatusNotFound, "not_found", "no analysis available", nil)
		case errors.Is(err, ErrBusy):
			respond.Error(c, http.StatusConflict, "busy", "A request is already in progress.", nil)
		case errors.As(err, &genErr):
			respond.Error(c, http.StatusBadGateway, "generation_failed", genErr.Msg, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate cover letter", nil)
		}
		return
	}

	respond.OK(c, record)
}
