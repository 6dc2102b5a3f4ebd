package analysis

import "time"

// AnalysisResult is the schema-validated output of one analysis call.
// All five fields are present and correctly typed, or the gateway call
// failed; a result is never partially populated.
type AnalysisResult struct {
	MatchScore         int      `json:"matchScore"`
	MatchedKeywords    []string `json:"matchedKeywords"`
	MissingKeywords    []string `json:"missingKeywords"`
	TailoredResumeText string   `json:"tailoredResumeText"`
	JobTitle           string   `json:"jobTitle"`
}

// FullAnalysis is the persisted unit of work: an analysis result plus
// provenance metadata. ID is assigned by the history store on first save;
// CoverLetterText is added later by an independent mutation that leaves
// ID and Timestamp untouched.
type FullAnalysis struct {
	AnalysisResult
	OriginalResume  string    `json:"originalResume"`
	Timestamp       time.Time `json:"timestamp"`
	ID              string    `json:"id"`
	CoverLetterText string    `json:"coverLetterText,omitempty"`
}
