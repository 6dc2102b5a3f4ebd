package analysis

import "context"

// HistoryStore persists completed analyses per user, newest first.
// Implementations assign the record ID on save and must never let a
// storage failure bubble into the analysis flow: Save returns the
// record it committed (or the input record unchanged on failure) along
// with the error for logging.
type HistoryStore interface {
	Save(ctx context.Context, userID string, record FullAnalysis) (FullAnalysis, error)
	Fetch(ctx context.Context, userID string) ([]FullAnalysis, error)
}
