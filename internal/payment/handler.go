package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/shared/server/middleware"
	"aptly-backend/internal/shared/server/respond"
	"aptly-backend/internal/shared/telemetry"
)

// Handler runs the simulated checkout and hands back a download token.
type Handler struct {
	Gate   *Gate
	Grants *Grants
}

// NewHandler constructs a Handler.
func NewHandler(gate *Gate, grants *Grants) *Handler {
	return &Handler{Gate: gate, Grants: grants}
}

// RegisterRoutes attaches payment routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.pay)
}

func (h *Handler) pay(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Gate.Authorize(c.Request.Context()); err != nil {
		if errors.Is(err, context.Canceled) {
			// Client went away mid-payment; nothing was granted.
			c.Abort()
			return
		}
		respond.Error(c, http.StatusInternalServerError, "payment_failed", "payment could not be completed", nil)
		return
	}

	token := h.Grants.Issue(userID)
	telemetry.Info("payment.completed", map[string]any{"user_id": userID})

	respond.OK(c, gin.H{"downloadToken": token})
}
