package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resultSchema declares the exact shape an analysis response must have.
// The response is a bare JSON object: no markdown fences, no commentary.
const resultSchema = `{
  "type": "object",
  "properties": {
    "matchScore": {
      "type": "number",
      "minimum": 0,
      "maximum": 100,
      "description": "How well the resume matches the job description, 0-100."
    },
    "matchedKeywords": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Top keywords from the job description present in the resume."
    },
    "missingKeywords": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Top keywords from the job description missing from the resume."
    },
    "tailoredResumeText": {
      "type": "string",
      "description": "The complete rewritten resume, tailored to the job description."
    },
    "jobTitle": {
      "type": "string",
      "description": "A short job title extracted from the job description."
    }
  },
  "required": ["matchScore", "matchedKeywords", "missingKeywords", "tailoredResumeText", "jobTitle"]
}`

// decodeResult validates a raw model response against the result schema
// and decodes it. Any violation fails the whole decode; a result is never
// partially populated.
func decodeResult(raw string) (AnalysisResult, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AnalysisResult{}, fmt.Errorf("empty response body")
	}
	if !json.Valid([]byte(raw)) {
		return AnalysisResult{}, fmt.Errorf("response is not valid JSON")
	}

	schemaLoader := gojsonschema.NewStringLoader(resultSchema)
	documentLoader := gojsonschema.NewStringLoader(raw)
	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("schema validate: %w", err)
	}
	if !validation.Valid() {
		issues := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			issues = append(issues, desc.String())
		}
		return AnalysisResult{}, fmt.Errorf("schema mismatch: %s", strings.Join(issues, "; "))
	}

	// Models occasionally emit 87.0 for an integer score; accept and round.
	var parsed struct {
		MatchScore         float64  `json:"matchScore"`
		MatchedKeywords    []string `json:"matchedKeywords"`
		MissingKeywords    []string `json:"missingKeywords"`
		TailoredResumeText string   `json:"tailoredResumeText"`
		JobTitle           string   `json:"jobTitle"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return AnalysisResult{}, fmt.Errorf("decode: %w", err)
	}

	return AnalysisResult{
		MatchScore:         int(math.Round(parsed.MatchScore)),
		MatchedKeywords:    parsed.MatchedKeywords,
		MissingKeywords:    parsed.MissingKeywords,
		TailoredResumeText: parsed.TailoredResumeText,
		JobTitle:           parsed.JobTitle,
	}, nil
}
