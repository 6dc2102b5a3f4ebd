package history

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/analysis"
)

func newHistoryRouter(store analysis.HistoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	NewHandler(store).RegisterRoutes(api)
	return router
}

func TestHistoryEndpointEmpty(t *testing.T) {
	router := newHistoryRouter(NewMemoryStore())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array: %s", resp.Body.String())
	}
}

func TestHistoryEndpointListsRecords(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Save(context.Background(), "user-1", sampleRecord("old")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(context.Background(), "user-1", sampleRecord("new")); err != nil {
		t.Fatalf("save: %v", err)
	}
	router := newHistoryRouter(store)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "tailored new") || !strings.Contains(body, "tailored old") {
		t.Fatalf("expected both records: %s", body)
	}
	if strings.Index(body, "tailored new") > strings.Index(body, "tailored old") {
		t.Fatalf("expected newest record first: %s", body)
	}
}

type brokenStore struct{}

func (brokenStore) Save(ctx context.Context, userID string, record analysis.FullAnalysis) (analysis.FullAnalysis, error) {
	return record, errors.New("disk full")
}

func (brokenStore) Fetch(ctx context.Context, userID string) ([]analysis.FullAnalysis, error) {
	return nil, errors.New("disk full")
}

func TestHistoryEndpointDegradesOnStorageFailure(t *testing.T) {
	router := newHistoryRouter(brokenStore{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/history", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("storage failure must not surface, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items on failure: %s", resp.Body.String())
	}
}
