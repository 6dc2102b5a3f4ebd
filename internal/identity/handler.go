// Package identity mints and retires the mock user identities the app
// runs on. There is no credential check; sign-in always succeeds with a
// fresh anonymous user.
package identity

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/analysis"
	"aptly-backend/internal/shared/auth"
	"aptly-backend/internal/shared/server/middleware"
	"aptly-backend/internal/shared/server/respond"
	"aptly-backend/internal/shared/telemetry"
)

// Handler serves the mock sign-in and sign-out endpoints.
type Handler struct {
	Sessions *analysis.Sessions
	now      func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(sessions *analysis.Sessions) *Handler {
	return &Handler{Sessions: sessions, now: time.Now}
}

// RegisterRoutes attaches auth routes to the router group. Sign-in is
// exempt from the auth middleware so a first identity can be minted.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/anonymous", h.anonymous)
	rg.POST("/auth/signout", h.signOut)
}

func (h *Handler) anonymous(c *gin.Context) {
	userID := fmt.Sprintf("mock-user-%d", h.now().UnixMilli())

	token, err := auth.SignJWT(auth.Claims{
		Sub:       userID,
		Anonymous: true,
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create identity", nil)
		return
	}

	telemetry.Info("identity.anonymous", map[string]any{"user_id": userID})
	respond.OK(c, gin.H{
		"userId": userID,
		"token":  token,
	})
}

func (h *Handler) signOut(c *gin.Context) {
	// Sign-out drops the in-memory session; saved history stays on disk
	// for whenever the same identity returns.
	userID := middleware.UserIDFromContext(c)
	if userID != "" {
		h.Sessions.Drop(userID)
	}
	respond.OK(c, gin.H{"signedOut": true})
}
