package core

import (
	"errors"
	"log"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/delivery-desk/v2/internal/auth"
	"github.com/delivery-desk/v2/internal/upload"
)

// loginDomain completes bare usernames typed into the login form. Staff
// accounts all live under the company domain, so "jdoe" submits as
// "jdoe@deliverydesk.com". Fixed business rule, not configurable.
const loginDomain = "deliverydesk.com"

// AuthState is the manager's position in the sign-in lifecycle
type AuthState int

const (
	StateUnauthenticated AuthState = iota
	StateAuthenticating
	StateAuthenticated
	StateFailed
)

func (s AuthState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// AuthManager orchestrates the identity API and the session store. It is
// the only component windows talk to for anything session-related. All
// state transitions are serialized behind one mutex; the network calls
// themselves happen outside it.
type AuthManager struct {
	mu      sync.Mutex
	state   AuthState
	lastErr error

	api   auth.API
	store *SessionStore
}

// NewAuthManager wires the manager to its collaborators. When the store
// already holds a hydrated session the manager starts out authenticated
// optimistically; the first failing authenticated call corrects it.
func NewAuthManager(api auth.API, store *SessionStore) *AuthManager {
	m := &AuthManager{
		state: StateUnauthenticated,
		api:   api,
		store: store,
	}
	if store.Current() != nil {
		m.state = StateAuthenticated
	}
	return m
}

// State returns the current lifecycle state
func (m *AuthManager) State() AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError returns the most recent failure exposed to the UI, if any
func (m *AuthManager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Login validates the credentials locally, normalizes a bare username to
// the company domain, and runs the sign-in. Empty fields never reach the
// network. A login already in flight rejects the second attempt
// immediately instead of queuing it.
func (m *AuthManager) Login(identifier, secret string) error {
	if err := (validation.Errors{
		"identifier": validation.Validate(identifier, validation.Required.Error("email or username is required")),
		"secret":     validation.Validate(secret, validation.Required.Error("password is required")),
	}).Filter(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.state == StateAuthenticating {
		m.mu.Unlock()
		return auth.ErrLoginInProgress
	}
	m.state = StateAuthenticating
	m.lastErr = nil
	m.mu.Unlock()

	session, err := m.api.Login(normalizeIdentifier(identifier), secret)
	if err == nil {
		// Persist before announcing success so the durable token and
		// the in-memory session never disagree.
		err = m.store.Set(*session)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = StateFailed
		m.lastErr = err
		return err
	}
	m.state = StateAuthenticated
	return nil
}

// Acknowledge returns the manager from a failed login back to the
// unauthenticated state once the UI has shown the error.
func (m *AuthManager) Acknowledge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateFailed {
		m.state = StateUnauthenticated
		m.lastErr = nil
	}
}

// Logout ends the session. The remote call is best effort: the local
// session is cleared even when the server cannot be reached, because a
// failed network call must never keep the user signed in locally.
func (m *AuthManager) Logout() error {
	var err error
	if m.store.Current() != nil {
		if err = m.api.Logout(); err != nil {
			log.Printf("Remote logout failed, clearing local session anyway: %v", err)
		}
	}

	m.store.Clear()

	m.mu.Lock()
	m.state = StateUnauthenticated
	m.lastErr = nil
	m.mu.Unlock()

	return err
}

// ForceExpire is the transition the session guard drives when the server
// rejects an authenticated call. It reports whether a session was
// actually invalidated, so a burst of concurrent 401s collapses to a
// single transition.
func (m *AuthManager) ForceExpire() bool {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return false
	}
	m.state = StateUnauthenticated
	m.lastErr = auth.ErrSessionExpired
	m.mu.Unlock()

	m.store.Clear()
	return true
}

// UpdateProfile renames the signed-in user and folds the server's
// updated profile back into the session.
func (m *AuthManager) UpdateProfile(name string) error {
	if err := (validation.Errors{
		"name": validation.Validate(name, validation.Required.Error("name is required")),
	}).Filter(); err != nil {
		return err
	}
	if m.store.Current() == nil {
		return auth.ErrNoSession
	}

	user, err := m.api.UpdateProfile(name)
	if err != nil {
		return err
	}

	m.store.UpdateUser(*user)
	return nil
}

// ChangePassword verifies the confirmation locally before calling the
// API. A mismatch between the new password and its confirmation never
// leaves the client. Session validity is unaffected by a password change.
func (m *AuthManager) ChangePassword(current, next, confirm string) error {
	errs := validation.Errors{
		"current": validation.Validate(current, validation.Required.Error("current password is required")),
		"next":    validation.Validate(next, validation.Required.Error("new password is required")),
	}
	if next != "" && next != confirm {
		errs["confirm"] = errors.New("passwords do not match")
	}
	if err := errs.Filter(); err != nil {
		return err
	}
	if m.store.Current() == nil {
		return auth.ErrNoSession
	}

	return m.api.ChangePassword(current, next)
}

// UploadAvatar validates the candidate, uploads it, and writes the new
// avatar URL into the profile before reporting success, so the UI never
// sees a success with a stale avatar.
func (m *AuthManager) UploadAvatar(candidate upload.Candidate) error {
	if err := upload.Validate(candidate); err != nil {
		return err
	}
	if m.store.Current() == nil {
		return auth.ErrNoSession
	}

	result, err := m.api.UploadAvatar(candidate)
	if err != nil {
		return err
	}

	// The session may have been force-expired while the upload was in
	// flight; in that case the result is abandoned.
	session := m.store.Current()
	if session == nil {
		return auth.ErrNoSession
	}
	user := session.User
	user.AvatarURL = result.URL
	m.store.UpdateUser(user)
	return nil
}

func normalizeIdentifier(identifier string) string {
	if strings.Contains(identifier, "@") {
		return identifier
	}
	return identifier + "@" + loginDomain
}
