package history

import (
	"context"
	"strconv"
	"sync"
	"time"

	"aptly-backend/internal/analysis"
)

// MemoryStore is an in-memory HistoryStore for tests and for running
// without a data directory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]analysis.FullAnalysis
	lastID  int64
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]analysis.FullAnalysis)}
}

// Save assigns the record an ID and prepends it to the user's history.
func (s *MemoryStore) Save(ctx context.Context, userID string, record analysis.FullAnalysis) (analysis.FullAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return record, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixNano()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	record.ID = strconv.FormatInt(now, 10)

	s.records[userID] = append([]analysis.FullAnalysis{record}, s.records[userID]...)
	return record, nil
}

// Fetch returns the user's history, newest first.
func (s *MemoryStore) Fetch(ctx context.Context, userID string) ([]analysis.FullAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]analysis.FullAnalysis, len(s.records[userID]))
	copy(out, s.records[userID])
	return out, nil
}

var _ analysis.HistoryStore = (*MemoryStore)(nil)
