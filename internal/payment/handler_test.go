package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestPayEndpointIssuesDownloadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	grants := NewGrants()
	handler := NewHandler(&Gate{Delay: time.Millisecond}, grants)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		DownloadToken string `json:"downloadToken"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.DownloadToken == "" {
		t.Fatalf("expected a download token")
	}
	if !grants.Redeem("user-1", payload.DownloadToken) {
		t.Fatalf("issued token should redeem for the paying user")
	}
}
