package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/analysis"
	"aptly-backend/internal/export"
	"aptly-backend/internal/history"
	"aptly-backend/internal/identity"
	"aptly-backend/internal/importer"
	"aptly-backend/internal/payment"
	"aptly-backend/internal/prefs"
	"aptly-backend/internal/shared/config"
	"aptly-backend/internal/shared/metrics"
	"aptly-backend/internal/shared/server/middleware"
	"aptly-backend/internal/shared/server/respond"
)

// RouterDeps carries the constructed handlers the router wires up.
type RouterDeps struct {
	Config   config.Config
	Identity *identity.Handler
	Importer *importer.Handler
	Analysis *analysis.Handler
	History  *history.Handler
	Payment  *payment.Handler
	Export   *export.Handler
	Prefs    *prefs.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(api)
	deps.Identity.RegisterRoutes(api)
	deps.Importer.RegisterRoutes(api)
	deps.Analysis.RegisterRoutes(api)
	deps.History.RegisterRoutes(api)
	deps.Payment.RegisterRoutes(api)
	deps.Export.RegisterRoutes(api)
	deps.Prefs.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
