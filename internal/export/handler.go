package export

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/analysis"
	"aptly-backend/internal/payment"
	"aptly-backend/internal/shared/metrics"
	"aptly-backend/internal/shared/server/middleware"
	"aptly-backend/internal/shared/server/respond"
)

// Handler serves paid PDF downloads of the current analysis.
type Handler struct {
	Sessions *analysis.Sessions
	Grants   *payment.Grants
}

// NewHandler constructs a Handler.
func NewHandler(sessions *analysis.Sessions, grants *payment.Grants) *Handler {
	return &Handler{Sessions: sessions, Grants: grants}
}

// RegisterRoutes attaches export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/exports/resume", h.exportResume)
	rg.GET("/exports/cover-letter", h.exportCoverLetter)
}

func (h *Handler) exportResume(c *gin.Context) {
	record, ok := h.authorize(c)
	if !ok {
		return
	}
	h.send(c, ResumeFileName, record.TailoredResumeText)
}

func (h *Handler) exportCoverLetter(c *gin.Context) {
	record, ok := h.authorize(c)
	if !ok {
		return
	}
	if strings.TrimSpace(record.CoverLetterText) == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "no cover letter available", nil)
		return
	}
	h.send(c, CoverLetterFileName, record.CoverLetterText)
}

// authorize redeems the download token and loads the current record.
// Each token pays for exactly one download.
func (h *Handler) authorize(c *gin.Context) (analysis.FullAnalysis, bool) {
	userID := middleware.UserIDFromContext(c)

	token := strings.TrimSpace(c.Query("token"))
	if token == "" || !h.Grants.Redeem(userID, token) {
		respond.Error(c, http.StatusPaymentRequired, "payment_required", "A completed payment is required to download.", nil)
		return analysis.FullAnalysis{}, false
	}

	record, err := h.Sessions.ForUser(userID).Current()
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "no analysis available", nil)
		return analysis.FullAnalysis{}, false
	}
	return record, true
}

func (h *Handler) send(c *gin.Context, fileName, text string) {
	payload, err := RenderPDF(text)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render pdf", nil)
		return
	}

	metrics.IncExport()
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
