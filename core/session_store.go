package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/delivery-desk/v2/internal/auth"
)

const tokenFileName = ".token"

// SessionStore is the single process-wide holder of the current session.
// The bearer token is mirrored to a file in the data directory; the
// in-memory session and the file are only ever written inside Set and
// Clear, so the two cannot diverge past one synchronous step.
type SessionStore struct {
	mu        sync.Mutex
	tokenPath string
	session   *auth.Session
	listeners map[int]func(*auth.Session)
	nextID    int
}

// NewSessionStore creates the store and ensures the data directory exists
func NewSessionStore(dataDir string) (*SessionStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return &SessionStore{
		tokenPath: filepath.Join(dataDir, tokenFileName),
		listeners: make(map[int]func(*auth.Session)),
	}, nil
}

// Hydrate restores a persisted token from a previous run. Only the token
// survives a restart; the profile stays minimal until the next
// authenticated call fills it in, so callers must tolerate a session with
// an empty user right after startup.
func (s *SessionStore) Hydrate() bool {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return false
	}

	s.mu.Lock()
	s.session = &auth.Session{Token: token}
	s.mu.Unlock()

	s.notify()
	return true
}

// Set replaces the current session, token and profile together. The token
// file is written first; if that fails neither the file nor the in-memory
// session changes.
func (s *SessionStore) Set(session auth.Session) error {
	s.mu.Lock()
	if err := os.WriteFile(s.tokenPath, []byte(session.Token), 0600); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	stored := session
	s.session = &stored
	s.mu.Unlock()

	s.notify()
	return nil
}

// Clear destroys the session and removes the persisted token. It never
// fails from the caller's point of view: a missing file is fine and any
// other removal error is logged, because logout must not be blocked by
// local storage.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove token file: %v", err)
	}
	s.session = nil
	s.mu.Unlock()

	s.notify()
}

// Current returns a copy of the session, or nil when unauthenticated
func (s *SessionStore) Current() *auth.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	current := *s.session
	return &current
}

// Token returns the bearer token for outgoing requests, or "" when there
// is no session.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// UpdateUser replaces the profile of the current session in place,
// keeping the token. Whole-profile replacement: the last successful
// write wins, there is no merging. No-op when no session exists.
func (s *SessionStore) UpdateUser(user auth.UserProfile) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return
	}
	s.session.User = user
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers a listener that is called with the current session
// (or nil) after every change. The returned function unsubscribes.
func (s *SessionStore) Subscribe(fn func(*auth.Session)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *SessionStore) notify() {
	s.mu.Lock()
	fns := make([]func(*auth.Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	var current *auth.Session
	if s.session != nil {
		copied := *s.session
		current = &copied
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(current)
	}
}
