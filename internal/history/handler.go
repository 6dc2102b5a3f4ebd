package history

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/analysis"
	"aptly-backend/internal/shared/server/middleware"
	"aptly-backend/internal/shared/server/respond"
	"aptly-backend/internal/shared/telemetry"
)

// Handler serves the user's saved analyses.
type Handler struct {
	Store analysis.HistoryStore
}

// NewHandler constructs a Handler.
func NewHandler(store analysis.HistoryStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.list)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	records, err := h.Store.Fetch(c.Request.Context(), userID)
	if err != nil {
		// A broken history file should not take the page down; the
		// user just sees an empty list.
		telemetry.Warn("history.fetch", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		records = []analysis.FullAnalysis{}
	}
	if records == nil {
		records = []analysis.FullAnalysis{}
	}

	respond.JSON(c, http.StatusOK, gin.H{"items": records})
}
