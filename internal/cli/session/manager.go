package session

import (
	"errors"
	"sync"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
)

// State describes the manager's position in the auth lifecycle.
type State int

const (
	// StateInitializing is the state before the persisted session has
	// been consulted.
	StateInitializing State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "initializing"
	}
}

// AuthAPI is the slice of the API client the manager needs.
type AuthAPI interface {
	Login(email, password string) (*client.AuthUser, error)
	Register(email, password string) error
}

// Manager is the single source of truth for who is logged in. It is
// constructed explicitly with its dependencies and handed to consumers;
// there is no package-level instance.
//
// Overlapping Login/Register/Logout calls are not serialized against the
// network, but state transitions carry a generation counter: a completing
// call whose generation has been superseded discards its mutation instead
// of racing for last write.
type Manager struct {
	store    *Store
	api      AuthAPI
	notifier Notifier

	mu         sync.Mutex
	state      State
	current    *Session
	inflight   int
	generation uint64
}

// NewManager builds a manager and synchronously recovers any persisted
// session. The manager always leaves construction out of the loading state.
func NewManager(store *Store, api AuthAPI, notifier Notifier) *Manager {
	m := &Manager{
		store:    store,
		api:      api,
		notifier: notifier,
		state:    StateInitializing,
	}

	sess, err := store.Load()
	if err == nil && sess != nil {
		m.state = StateAuthenticated
		m.current = sess
	} else {
		// Load errors degrade to an anonymous session rather than
		// failing construction; the user can log in again.
		m.state = StateAnonymous
	}

	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the active session, or nil when anonymous.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	sess := *m.current
	return &sess
}

// Loading reports whether a login or register call is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inflight > 0
}

// Login authenticates against the backend. On success the session is
// stored and the manager becomes authenticated. On rejection the backend
// message is surfaced; on transport or decode failure a generic network
// notification is shown. Exactly one of the three outcomes occurs, and
// the loading flag is released on every path.
func (m *Manager) Login(email, password string) bool {
	gen := m.begin(true)
	defer m.end()

	user, err := m.api.Login(email, password)
	if err != nil {
		m.notifier.Error(loginErrorMessage(err))
		return false
	}

	sess := Session{UserID: user.ID, Email: user.Email, Token: user.Token}
	m.commit(gen, sess)
	m.notifier.Success("Login successful!")
	return true
}

// Register creates an account. It never establishes a session; the caller
// is expected to log in separately.
func (m *Manager) Register(email, password string) bool {
	m.begin(false)
	defer m.end()

	if err := m.api.Register(email, password); err != nil {
		m.notifier.Error(registerErrorMessage(err))
		return false
	}

	m.notifier.Success("Registration successful! Please login.")
	return true
}

// Logout clears the in-memory session and the persisted copy and returns
// the manager to anonymous. It cannot fail and is safe to call while
// already anonymous; any login still in flight is superseded.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.generation++
	m.state = StateAnonymous
	m.current = nil
	m.mu.Unlock()

	// Best effort: a keychain failure must not block logout.
	_ = m.store.Clear()

	m.notifier.Success("Logged out successfully")
}

// begin marks a call in flight. Login calls additionally claim a new
// generation so that a response resolving after a later login or logout
// is discarded.
func (m *Manager) begin(claimGeneration bool) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inflight++
	if claimGeneration {
		m.generation++
	}
	return m.generation
}

func (m *Manager) end() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inflight--
}

// commit installs a session unless the call's generation has been
// superseded, in which case the persisted copy is left to the newer call.
func (m *Manager) commit(gen uint64, sess Session) {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.state = StateAuthenticated
	m.current = &sess
	m.mu.Unlock()

	_ = m.store.Save(sess)
}

func loginErrorMessage(err error) string {
	return rejectionMessage(err, "Login failed")
}

func registerErrorMessage(err error) string {
	return rejectionMessage(err, "Registration failed")
}

// rejectionMessage maps an API client error onto the user-facing
// notification text: backend messages verbatim, everything else generic.
func rejectionMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	// Transport and decode failures read the same to the user.
	return "Network error. Please try again."
}
