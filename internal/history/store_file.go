// Package history persists completed analyses per user, newest first.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"aptly-backend/internal/analysis"
	"aptly-backend/internal/shared/util"
)

// FileStore keeps each user's history in its own JSON file under
// <dir>/history. User IDs are hashed so arbitrary identity strings
// never become filesystem paths.
type FileStore struct {
	dir string

	mu     sync.Mutex
	lastID int64
}

// NewFileStore creates the history directory and returns a store.
func NewFileStore(dataDir string) (*FileStore, error) {
	dir := filepath.Join(dataDir, "history")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) pathFor(userID string) string {
	return filepath.Join(s.dir, "aptly_history_"+util.HashUserKey(userID)+".json")
}

// nextID returns a strictly increasing nanosecond timestamp. Two saves
// in the same nanosecond still get distinct, ordered IDs.
func (s *FileStore) nextID() string {
	now := time.Now().UnixNano()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	return strconv.FormatInt(now, 10)
}

// Save assigns the record an ID and prepends it to the user's history.
func (s *FileStore) Save(ctx context.Context, userID string, record analysis.FullAnalysis) (analysis.FullAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return record, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID()

	existing, err := s.load(userID)
	if err != nil {
		return record, err
	}

	updated := make([]analysis.FullAnalysis, 0, len(existing)+1)
	updated = append(updated, record)
	updated = append(updated, existing...)

	if err := s.write(userID, updated); err != nil {
		return record, err
	}
	return record, nil
}

// Fetch returns the user's history, newest first. A missing file is an
// empty history, not an error.
func (s *FileStore) Fetch(ctx context.Context, userID string) ([]analysis.FullAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(userID)
}

func (s *FileStore) load(userID string) ([]analysis.FullAnalysis, error) {
	raw, err := os.ReadFile(s.pathFor(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []analysis.FullAnalysis{}, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	var records []analysis.FullAnalysis
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return records, nil
}

func (s *FileStore) write(userID string, records []analysis.FullAnalysis) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	path := s.pathFor(userID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

var _ analysis.HistoryStore = (*FileStore)(nil)
