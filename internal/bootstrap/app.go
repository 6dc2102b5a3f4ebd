// Package bootstrap assembles the application from configuration.
package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/analysis"
	"aptly-backend/internal/export"
	"aptly-backend/internal/history"
	"aptly-backend/internal/identity"
	"aptly-backend/internal/importer"
	"aptly-backend/internal/llm"
	openai "aptly-backend/internal/llm/openai"
	"aptly-backend/internal/payment"
	"aptly-backend/internal/prefs"
	"aptly-backend/internal/shared/config"
	"aptly-backend/internal/shared/server"
	"aptly-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config   config.Config
	Router   *gin.Engine
	LLM      llm.Client
	History  analysis.HistoryStore
	Prefs    prefs.ThemeStore
	Gateway  *analysis.Gateway
	Sessions *analysis.Sessions
	Gate     *payment.Gate
	Grants   *payment.Grants
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	client, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	historyStore, prefsStore, err := buildStores(cfg)
	if err != nil {
		return nil, err
	}

	gateway := &analysis.Gateway{Client: client}
	sessions := analysis.NewSessions(gateway, historyStore)
	gate := &payment.Gate{Delay: cfg.PaymentDelay}
	grants := payment.NewGrants()

	app := &App{
		Config:   cfg,
		LLM:      client,
		History:  historyStore,
		Prefs:    prefsStore,
		Gateway:  gateway,
		Sessions: sessions,
		Gate:     gate,
		Grants:   grants,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Identity: identity.NewHandler(sessions),
		Importer: importer.NewHandler(),
		Analysis: analysis.NewHandler(sessions),
		History:  history.NewHandler(historyStore),
		Payment:  payment.NewHandler(gate, grants),
		Export:   export.NewHandler(sessions, grants),
		Prefs:    prefs.NewHandler(prefsStore),
	})

	return app, nil
}

// buildLLM selects the model client. Outside production a misconfigured
// provider falls back to the placeholder so the rest of the app still
// runs; production fails fast.
func buildLLM(cfg config.Config) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "", "placeholder":
		return llm.PlaceholderClient{}, nil
	case "openai":
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			if cfg.Env == "production" {
				return nil, err
			}
			telemetry.Warn("bootstrap.llm", map[string]any{
				"error":    err.Error(),
				"fallback": "placeholder",
			})
			return llm.PlaceholderClient{}, nil
		}
		return client, nil
	default:
		telemetry.Warn("bootstrap.llm", map[string]any{
			"provider": cfg.LLMProvider,
			"fallback": "placeholder",
		})
		return llm.PlaceholderClient{}, nil
	}
}

// buildStores picks file-backed stores when a data directory is
// configured and in-memory ones otherwise.
func buildStores(cfg config.Config) (analysis.HistoryStore, prefs.ThemeStore, error) {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return history.NewMemoryStore(), prefs.NewMemoryStore(), nil
	}

	historyStore, err := history.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	prefsStore, err := prefs.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return historyStore, prefsStore, nil
}
