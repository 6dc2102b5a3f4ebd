package analysis

import (
	"context"
	"strings"
	"sync"
	"time"

	"aptly-backend/internal/shared/metrics"
	"aptly-backend/internal/shared/telemetry"
)

// State is the lifecycle phase of a user's analysis session.
type State string

const (
	StateIdle                  State = "idle"
	StateAnalyzing             State = "analyzing"
	StateAnalyzed              State = "analyzed"
	StateGeneratingCoverLetter State = "generatingCoverLetter"
	StateFailed                State = "failed"
)

// Session tracks one user's current analysis and in-flight work. A new
// analysis replaces the current record only on success; a failed attempt
// keeps the previous record visible so the user does not lose work.
type Session struct {
	userID  string
	gateway *Gateway
	history HistoryStore

	mu             sync.Mutex
	state          State
	current        *FullAnalysis
	jobDescription string
	lastError      string
	analyzing      bool
	generating     bool
}

// NewSession creates an idle session for one user.
func NewSession(userID string, gateway *Gateway, history HistoryStore) *Session {
	return &Session{
		userID:  userID,
		gateway: gateway,
		history: history,
		state:   StateIdle,
	}
}

// Snapshot is a point-in-time view of the session for API responses.
type Snapshot struct {
	State     State         `json:"state"`
	Current   *FullAnalysis `json:"current,omitempty"`
	LastError string        `json:"lastError,omitempty"`
}

// Snapshot returns the session's current state and record.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{State: s.state, LastError: s.lastError}
	if s.current != nil {
		record := *s.current
		snap.Current = &record
	}
	return snap
}

// Current returns the committed analysis record, or ErrNoAnalysis.
func (s *Session) Current() (FullAnalysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return FullAnalysis{}, ErrNoAnalysis
	}
	return *s.current, nil
}

// Analyze runs one analysis for the session. Blank input fails fast with
// a ValidationError before any model call. Only one analysis or cover
// letter may be in flight at a time.
func (s *Session) Analyze(ctx context.Context, resumeText, jobDescription string) (FullAnalysis, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return FullAnalysis{}, &ValidationError{Msg: "Please provide both a resume and a job description."}
	}

	s.mu.Lock()
	if s.analyzing || s.generating {
		s.mu.Unlock()
		return FullAnalysis{}, ErrBusy
	}
	s.analyzing = true
	s.state = StateAnalyzing
	s.lastError = ""
	s.mu.Unlock()

	result, err := s.gateway.Analyze(ctx, resumeText, jobDescription)
	if err != nil {
		metrics.IncAnalysisFailed()
		s.mu.Lock()
		s.analyzing = false
		s.state = StateFailed
		s.lastError = userMessage(err)
		s.mu.Unlock()
		return FullAnalysis{}, err
	}

	record := FullAnalysis{
		AnalysisResult: result,
		OriginalResume: resumeText,
		Timestamp:      time.Now().UTC(),
	}

	// History is best effort: a storage failure is logged and the
	// analysis still succeeds.
	saved, saveErr := s.history.Save(ctx, s.userID, record)
	if saveErr != nil {
		telemetry.Warn("session.history_save", map[string]any{
			"user_id": s.userID,
			"error":   saveErr.Error(),
		})
		saved = record
	}

	metrics.IncAnalysisCompleted()
	s.mu.Lock()
	s.analyzing = false
	s.state = StateAnalyzed
	s.current = &saved
	s.jobDescription = jobDescription
	s.mu.Unlock()
	return saved, nil
}

// GenerateCoverLetter generates a cover letter for the current analysis
// and attaches it to the record in place. ID, timestamp, and the analysis
// fields are left untouched; a failure leaves any previous cover letter
// as it was.
func (s *Session) GenerateCoverLetter(ctx context.Context, notes string) (FullAnalysis, error) {
	s.mu.Lock()
	if s.analyzing || s.generating {
		s.mu.Unlock()
		return FullAnalysis{}, ErrBusy
	}
	if s.current == nil {
		s.mu.Unlock()
		return FullAnalysis{}, ErrNoAnalysis
	}
	tailored := s.current.TailoredResumeText
	jobDescription := s.jobDescription
	s.generating = true
	prevState := s.state
	s.state = StateGeneratingCoverLetter
	s.mu.Unlock()

	letter, err := s.gateway.GenerateCoverLetter(ctx, tailored, jobDescription, notes)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	s.state = prevState
	if err != nil {
		metrics.IncCoverLetterFailed()
		s.lastError = userMessage(err)
		return FullAnalysis{}, err
	}
	if s.current == nil {
		return FullAnalysis{}, ErrNoAnalysis
	}
	s.current.CoverLetterText = letter
	metrics.IncCoverLetterCompleted()
	return *s.current, nil
}

func userMessage(err error) string {
	if genErr, ok := err.(*GenerationError); ok {
		return genErr.Msg
	}
	return err.Error()
}

// Sessions hands out one Session per user, created on first use.
type Sessions struct {
	gateway *Gateway
	history HistoryStore

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessions creates an empty session registry.
func NewSessions(gateway *Gateway, history HistoryStore) *Sessions {
	return &Sessions{
		gateway:  gateway,
		history:  history,
		sessions: make(map[string]*Session),
	}
}

// ForUser returns the user's session, creating it if needed.
func (m *Sessions) ForUser(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess
	}
	sess := NewSession(userID, m.gateway, m.history)
	m.sessions[userID] = sess
	return sess
}

// Drop removes a user's session, typically on sign-out.
func (m *Sessions) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
