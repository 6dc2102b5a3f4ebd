package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aptly-backend/internal/shared/config"
)

func testConfig() config.Config {
	return config.Config{
		Port:            "8080",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LLMProvider:     "placeholder",
		PaymentDelay:    time.Millisecond,
	}
}

func TestBuildWiresRouter(t *testing.T) {
	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if app.Router == nil {
		t.Fatalf("expected router to be wired")
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.Code)
	}
}

func TestRoutesRequireIdentity(t *testing.T) {
	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, path := range []string{"/api/v1/history", "/api/v1/analyses/current", "/api/v1/prefs/theme"} {
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without identity, got %d", path, resp.Code)
		}
	}
}

func TestAnonymousSignInFlow(t *testing.T) {
	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/anonymous", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("sign in: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode sign in: %v", err)
	}
	if !strings.HasPrefix(payload.UserID, "mock-user-") || payload.Token == "" {
		t.Fatalf("unexpected identity: %+v", payload)
	}

	me := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	me.Header.Set("Authorization", "Bearer "+payload.Token)
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, me)
	if resp.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), payload.UserID) {
		t.Fatalf("me: expected user id in response: %s", resp.Body.String())
	}
}

func TestGuestHeaderIdentity(t *testing.T) {
	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	req.Header.Set("X-Guest-Id", "abc-123")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with guest header, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"items"`) {
		t.Fatalf("expected history payload: %s", resp.Body.String())
	}
}

func TestMetricsEndpointIsOpen(t *testing.T) {
	app, err := Build(testConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "analysis_completed_total") {
		t.Fatalf("expected counters in metrics output")
	}
}

func TestBuildWithDataDirUsesFileStores(t *testing.T) {
	cfg := testConfig()
	cfg.DataDir = t.TempDir()

	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/prefs/theme", strings.NewReader(`{"theme":"dark"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "abc-123")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("put theme: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/api/v1/prefs/theme", nil)
	get.Header.Set("X-Guest-Id", "abc-123")
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, get)
	if !strings.Contains(resp.Body.String(), `"dark"`) {
		t.Fatalf("expected persisted theme: %s", resp.Body.String())
	}
}
