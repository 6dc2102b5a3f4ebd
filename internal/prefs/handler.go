package prefs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/shared/server/middleware"
	"aptly-backend/internal/shared/server/respond"
	"aptly-backend/internal/shared/telemetry"
)

// Handler reads and writes per-user preferences.
type Handler struct {
	Store ThemeStore
}

// NewHandler constructs a Handler.
func NewHandler(store ThemeStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches preference routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/prefs/theme", h.getTheme)
	rg.PUT("/prefs/theme", h.putTheme)
}

func (h *Handler) getTheme(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	theme, err := h.Store.GetTheme(c.Request.Context(), userID)
	if err != nil {
		// Preferences are cosmetic; fall back to the default.
		telemetry.Warn("prefs.get_theme", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		theme = DefaultTheme
	}

	respond.OK(c, gin.H{"theme": theme})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (h *Handler) putTheme(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !ValidTheme(req.Theme) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "theme must be light or dark", nil)
		return
	}

	if err := h.Store.SetTheme(c.Request.Context(), userID, req.Theme); err != nil {
		telemetry.Warn("prefs.set_theme", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}

	respond.OK(c, gin.H{"theme": req.Theme})
}
