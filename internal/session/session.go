package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the session file created under the user config directory.
const FileName = "session.yaml"

// Session is the persisted login state.
type Session struct {
	Token     string    `yaml:"token"`
	Email     string    `yaml:"email,omitempty"`
	CreatedAt time.Time `yaml:"createdAt,omitempty"`
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool {
	return s.Token != ""
}

// Store holds the current session and persists it to a YAML file.
// Token reads never touch the disk; writes happen only on login and logout.
type Store struct {
	path    string
	mu      sync.RWMutex
	current Session
}

// DefaultPath returns the session file location in the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "kalam", FileName), nil
}

// Open loads the session stored at path. A missing file yields an empty session.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.current); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Current returns a copy of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save replaces the session and writes it with owner-only permissions.
func (s *Store) Save(sess Session) error {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	data, err := yaml.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// Clear forgets the session and removes the file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
