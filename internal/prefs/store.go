// Package prefs stores small per-user UI preferences.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"aptly-backend/internal/shared/util"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	// DefaultTheme applies when a user has never picked one.
	DefaultTheme = ThemeLight
)

// ValidTheme reports whether the value is a theme we recognize.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

// ThemeStore persists each user's theme choice.
type ThemeStore interface {
	GetTheme(ctx context.Context, userID string) (string, error)
	SetTheme(ctx context.Context, userID, theme string) error
}

type themeRecord struct {
	Theme string `json:"theme"`
}

// FileStore keeps one JSON file per user under <dir>/prefs.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the prefs directory and returns a store.
func NewFileStore(dataDir string) (*FileStore, error) {
	dir := filepath.Join(dataDir, "prefs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) pathFor(userID string) string {
	return filepath.Join(s.dir, "aptly_theme_"+util.HashUserKey(userID)+".json")
}

// GetTheme returns the user's saved theme, or the default.
func (s *FileStore) GetTheme(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return DefaultTheme, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.pathFor(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTheme, nil
		}
		return DefaultTheme, fmt.Errorf("read theme: %w", err)
	}

	var record themeRecord
	if err := json.Unmarshal(raw, &record); err != nil || !ValidTheme(record.Theme) {
		return DefaultTheme, nil
	}
	return record.Theme, nil
}

// SetTheme saves the user's theme choice.
func (s *FileStore) SetTheme(ctx context.Context, userID, theme string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(themeRecord{Theme: theme})
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}

	path := s.pathFor(userID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit theme: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory ThemeStore for tests and for running
// without a data directory.
type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]string
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: make(map[string]string)}
}

// GetTheme returns the user's saved theme, or the default.
func (s *MemoryStore) GetTheme(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return DefaultTheme, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if theme, ok := s.themes[userID]; ok {
		return theme, nil
	}
	return DefaultTheme, nil
}

// SetTheme saves the user's theme choice.
func (s *MemoryStore) SetTheme(ctx context.Context, userID, theme string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[userID] = theme
	return nil
}

var (
	_ ThemeStore = (*FileStore)(nil)
	_ ThemeStore = (*MemoryStore)(nil)
)
