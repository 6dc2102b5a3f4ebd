package analysis

import (
	"context"
	"strings"
	"time"

	"aptly-backend/internal/llm"
	"aptly-backend/internal/shared/metrics"
	"aptly-backend/internal/shared/telemetry"
)

const (
	// Analysis favors consistency, cover letters favor variety.
	analysisTemperature    = 0.2
	coverLetterTemperature = 0.7
)

// Gateway wraps the generative model behind typed analyze and
// cover-letter calls. A single failed call surfaces immediately: no
// retries, no client-side rate limiting.
type Gateway struct {
	Client llm.Client
}

// Analyze sends a resume/job-description pair to the model and returns a
// schema-validated result.
func (g *Gateway) Analyze(ctx context.Context, resumeText, jobDescription string) (AnalysisResult, error) {
	start := time.Now()
	raw, err := g.Client.Complete(ctx, llm.Request{
		System:      llm.AnalysisSystemPrompt,
		Prompt:      llm.BuildAnalysisPrompt(resumeText, jobDescription),
		Temperature: analysisTemperature,
		JSONOutput:  true,
	})
	metrics.ObserveGatewayDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		telemetry.Error("gateway.analyze", map[string]any{"error": err.Error()})
		return AnalysisResult{}, &GenerationError{Msg: "Failed to get analysis from AI", Err: err}
	}

	result, err := decodeResult(raw)
	if err != nil {
		telemetry.Error("gateway.analyze.decode", map[string]any{"error": err.Error()})
		return AnalysisResult{}, &GenerationError{Msg: "AI returned an unusable analysis", Err: err}
	}
	return result, nil
}

// GenerateCoverLetter asks the model for a cover letter and returns the
// trimmed response body as-is.
func (g *Gateway) GenerateCoverLetter(ctx context.Context, tailoredResume, jobDescription, notes string) (string, error) {
	start := time.Now()
	raw, err := g.Client.Complete(ctx, llm.Request{
		System:      llm.CoverLetterSystemPrompt,
		Prompt:      llm.BuildCoverLetterPrompt(tailoredResume, jobDescription, notes),
		Temperature: coverLetterTemperature,
	})
	metrics.ObserveGatewayDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		telemetry.Error("gateway.cover_letter", map[string]any{"error": err.Error()})
		return "", &GenerationError{Msg: "Failed to generate cover letter from AI", Err: err}
	}
	return strings.TrimSpace(raw), nil
}
