package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"aptly-backend/internal/analysis"
	"aptly-backend/internal/history"
	"aptly-backend/internal/llm"
	"aptly-backend/internal/payment"
)

type scriptedClient struct {
	analysisJSON string
	coverLetter  string
}

func (s scriptedClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	if req.JSONOutput {
		return s.analysisJSON, nil
	}
	return s.coverLetter, nil
}

const exportResultJSON = `{
	"matchScore": 90,
	"matchedKeywords": ["Go"],
	"missingKeywords": [],
	"tailoredResumeText": "Tailored resume text",
	"jobTitle": "Engineer"
}`

func newExportRouter(t *testing.T, withLetter bool) (*gin.Engine, *payment.Grants) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := scriptedClient{analysisJSON: exportResultJSON, coverLetter: "Dear team, hire me."}
	sessions := analysis.NewSessions(&analysis.Gateway{Client: client}, history.NewMemoryStore())

	sess := sessions.ForUser("user-1")
	if _, err := sess.Analyze(context.Background(), "resume", "job"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if withLetter {
		if _, err := sess.GenerateCoverLetter(context.Background(), ""); err != nil {
			t.Fatalf("cover letter: %v", err)
		}
	}

	grants := payment.NewGrants()
	handler := NewHandler(sessions, grants)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, grants
}

func TestExportResumeRequiresPayment(t *testing.T) {
	router, _ := newExportRouter(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/resume", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusPaymentRequired {
		t.Fatalf("expected status 402, got %d", resp.Code)
	}
}

func TestExportResumeWithGrant(t *testing.T) {
	router, grants := newExportRouter(t, false)
	token := grants.Issue("user-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/resume?token="+token, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="`+ResumeFileName+`"` {
		t.Fatalf("unexpected content disposition: %q", cd)
	}
}

func TestExportTokenIsSingleUse(t *testing.T) {
	router, grants := newExportRouter(t, false)
	token := grants.Issue("user-1")

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/exports/resume?token="+token, nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected first download to succeed, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/exports/resume?token="+token, nil))
	if second.Code != http.StatusPaymentRequired {
		t.Fatalf("expected second download to require payment, got %d", second.Code)
	}
}

func TestExportCoverLetterMissing(t *testing.T) {
	router, grants := newExportRouter(t, false)
	token := grants.Issue("user-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/cover-letter?token="+token, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestExportCoverLetterWithGrant(t *testing.T) {
	router, grants := newExportRouter(t, true)
	token := grants.Issue("user-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/cover-letter?token="+token, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != `attachment; filename="`+CoverLetterFileName+`"` {
		t.Fatalf("unexpected content disposition: %q", cd)
	}
}
