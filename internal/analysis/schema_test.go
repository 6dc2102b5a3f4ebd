package analysis

import (
	"strings"
	"testing"
)

func TestDecodeResultValid(t *testing.T) {
	result, err := decodeResult(validResultJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.MatchScore != 82 {
		t.Fatalf("expected score 82, got %d", result.MatchScore)
	}
	if len(result.MatchedKeywords) != 2 || result.MatchedKeywords[0] != "Go" {
		t.Fatalf("unexpected matched keywords: %v", result.MatchedKeywords)
	}
	if result.JobTitle != "Backend Engineer" {
		t.Fatalf("unexpected job title: %q", result.JobTitle)
	}
}

func TestDecodeResultRoundsFractionalScore(t *testing.T) {
	raw := strings.Replace(validResultJSON, `"matchScore": 82`, `"matchScore": 87.6`, 1)
	result, err := decodeResult(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.MatchScore != 88 {
		t.Fatalf("expected rounded score 88, got %d", result.MatchScore)
	}
}

func TestDecodeResultRejectsMissingKey(t *testing.T) {
	raw := `{
		"matchScore": 50,
		"matchedKeywords": [],
		"missingKeywords": [],
		"tailoredResumeText": "text"
	}`
	if _, err := decodeResult(raw); err == nil {
		t.Fatalf("expected error for missing jobTitle")
	}
}

func TestDecodeResultRejectsWrongTypes(t *testing.T) {
	raw := strings.Replace(validResultJSON, `"matchScore": 82`, `"matchScore": "82"`, 1)
	if _, err := decodeResult(raw); err == nil {
		t.Fatalf("expected error for string matchScore")
	}
}

func TestDecodeResultRejectsOutOfRangeScore(t *testing.T) {
	raw := strings.Replace(validResultJSON, `"matchScore": 82`, `"matchScore": 140`, 1)
	if _, err := decodeResult(raw); err == nil {
		t.Fatalf("expected error for score above 100")
	}
}

func TestDecodeResultRejectsNonJSON(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"whitespace":     "   \n\t",
		"markdown fence": "```json\n" + validResultJSON + "\n```",
		"prose":          "Here is your analysis: great resume!",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := decodeResult(raw); err == nil {
				t.Fatalf("expected error for %s input", name)
			}
		})
	}
}
