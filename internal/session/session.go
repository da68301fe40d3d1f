// Package session manages the isolated, ephemeral working directory each
// synthesis request runs in.
//
// Lifecycle: Created -> Populated -> Finalized (success) or
// Created -> Populated -> CleanedUp (failure). The working directory is
// removed on every exit path; removal is idempotent and cleanup failures are
// logged, never returned, so they cannot mask the original error.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"clipforge/internal/fileutil"
	"clipforge/internal/logging"
)

// State tracks a session through its lifecycle.
type State int

const (
	StateCreated State = iota
	StatePopulated
	StateFinalized
	StateCleanedUp
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePopulated:
		return "populated"
	case StateFinalized:
		return "finalized"
	case StateCleanedUp:
		return "cleaned-up"
	default:
		return "unknown"
	}
}

// Manager allocates session working directories under a common temp root.
// Uniqueness of session IDs keeps concurrent sessions isolated; no lock is
// taken on the temp root.
type Manager struct {
	tempRoot string
	logger   *slog.Logger
}

// NewManager constructs a session manager rooted at tempRoot.
func NewManager(tempRoot string, logger *slog.Logger) (*Manager, error) {
	tempRoot = strings.TrimSpace(tempRoot)
	if tempRoot == "" {
		return nil, errors.New("session manager: temp root required")
	}
	return &Manager{
		tempRoot: tempRoot,
		logger:   logging.NewComponentLogger(logger, "session"),
	}, nil
}

// TempRoot returns the directory sessions are allocated under.
func (m *Manager) TempRoot() string {
	return m.tempRoot
}

// Begin allocates a new session with an empty, exclusively owned working
// directory.
func (m *Manager) Begin() (*Session, error) {
	id := uuid.NewString()
	dir := filepath.Join(m.tempRoot, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	logger := m.logger.With(logging.String(logging.FieldSessionID, id))
	logger.Debug("session started", logging.String("dir", dir))
	return &Session{id: id, dir: dir, logger: logger}, nil
}

// Session is the isolated working context for one synthesis request. The
// session exclusively owns every file inside its directory until Publish
// transfers the final artifact out.
type Session struct {
	id     string
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

// ID returns the session identifier, also used as the output filename stem.
func (s *Session) ID() string { return s.id }

// Dir returns the session's working directory.
func (s *Session) Dir() string { return s.dir }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Path returns a location inside the working directory for an intermediate
// file and marks the session populated. It fails once the session reached a
// terminal state.
func (s *Session) Path(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinalized || s.state == StateCleanedUp {
		return "", fmt.Errorf("session %s is %s: no further writes", s.id, s.state)
	}
	s.state = StatePopulated
	return filepath.Join(s.dir, name), nil
}

// Publish moves (never copies) the artifact at src to outputRoot/name,
// transferring ownership to the caller, and finalizes the session. The
// working directory itself is removed by the subsequent Cleanup call.
func (s *Session) Publish(src, outputRoot, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFinalized || s.state == StateCleanedUp {
		return "", fmt.Errorf("session %s is %s: cannot publish", s.id, s.state)
	}
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return "", fmt.Errorf("create output root: %w", err)
	}
	dest := filepath.Join(outputRoot, name)
	if err := fileutil.MoveFile(src, dest); err != nil {
		return "", fmt.Errorf("publish artifact: %w", err)
	}
	s.state = StateFinalized
	s.logger.Debug("session finalized", logging.String("output", dest))
	return dest, nil
}

// Cleanup removes the working directory and everything in it. It is safe to
// call in any state, any number of times; removing an already-absent
// directory is not an error. Failures are logged and swallowed so they never
// supersede the error that triggered cleanup.
func (s *Session) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.RemoveAll(s.dir); err != nil {
		s.logger.Warn("failed to remove session directory",
			logging.String("dir", s.dir),
			logging.Error(err),
		)
		return
	}
	if s.state != StateFinalized {
		s.state = StateCleanedUp
	}
}
