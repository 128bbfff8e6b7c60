package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/syrianarchive/archivectl/internal/model"
)

// Session holds the bearer credentials and minimal identity of the logged-in
// user. Tokens are opaque strings; nothing here inspects them.
type Session struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	UserID       int64      `json:"user_id,omitempty"`
	Role         model.Role `json:"role,omitempty"`
}

// Store persists the session as a JSON file with strict permissions.
// All operations are mutex-guarded and read-after-write consistent within the
// process; nothing is guaranteed across processes.
type Store struct {
	path string
	mu   sync.RWMutex
	cur  *Session
}

// NewStore creates a store backed by the given file path. The file is loaded
// lazily; a missing or unreadable file means "not authenticated".
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.archivectl/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".archivectl", "session.json"), nil
}

// Save stores the token pair and identity, replacing any existing session.
func (s *Store) Save(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	s.cur = &sess
	return nil
}

// SetAccess replaces only the access token, keeping the existing refresh
// token. Used after a successful token refresh (the server does not rotate
// refresh tokens).
func (s *Store) SetAccess(access string) error {
	sess, ok := s.Current()
	if !ok {
		return fmt.Errorf("no session to update")
	}
	sess.AccessToken = access
	return s.Save(sess)
}

// Current returns the stored session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	if s.cur != nil {
		sess := *s.cur
		s.mu.RUnlock()
		return sess, true
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if s.cur != nil {
		return *s.cur, true
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false
	}

	s.cur = &sess
	return sess, true
}

// Access returns the stored access token, or "" if absent.
func (s *Store) Access() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}
	return sess.AccessToken
}

// Refresh returns the stored refresh token, or "" if absent.
func (s *Store) Refresh() string {
	sess, ok := s.Current()
	if !ok {
		return ""
	}
	return sess.RefreshToken
}

// IsAuthenticated reports whether an access token is present.
func (s *Store) IsAuthenticated() bool {
	return s.Access() != ""
}

// Clear destroys the session in memory and on disk.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
