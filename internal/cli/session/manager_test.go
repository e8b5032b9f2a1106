package session

import (
	"errors"
	"testing"

	"github.com/leadmart-dev/leadmart/internal/cli/client"
)

// mockAuthAPI scripts the backend's auth responses
type mockAuthAPI struct {
	loginUser   *client.AuthUser
	loginErr    error
	registerErr error

	// onLogin runs inside the Login call, before the response resolves
	onLogin func()
}

func (m *mockAuthAPI) Login(email, password string) (*client.AuthUser, error) {
	if m.onLogin != nil {
		m.onLogin()
	}
	return m.loginUser, m.loginErr
}

func (m *mockAuthAPI) Register(email, password string) error {
	return m.registerErr
}

// recordingNotifier captures notification texts
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func newTestManager(api AuthAPI) (*Manager, *Store, *recordingNotifier) {
	store := NewStoreWithKeychain(newMemKeychain())
	notifier := &recordingNotifier{}
	return NewManager(store, api, notifier), store, notifier
}

func TestManager_RecoversPersistedSession(t *testing.T) {
	store := NewStoreWithKeychain(newMemKeychain())
	if err := store.Save(Session{UserID: 7, Email: "a@b.com", Token: "tok123"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	m := NewManager(store, &mockAuthAPI{}, &recordingNotifier{})

	if m.State() != StateAuthenticated {
		t.Errorf("expected authenticated state, got %s", m.State())
	}
	current := m.Current()
	if current == nil || current.UserID != 7 || current.Email != "a@b.com" || current.Token != "tok123" {
		t.Errorf("unexpected session: %+v", current)
	}
	if m.Loading() {
		t.Error("loading flag must be clear after construction")
	}
}

func TestManager_StartsAnonymousWithoutSession(t *testing.T) {
	m, _, _ := newTestManager(&mockAuthAPI{})

	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous state, got %s", m.State())
	}
	if m.Current() != nil {
		t.Error("expected no current session")
	}
	if m.Loading() {
		t.Error("loading flag must be clear after construction")
	}
}

func TestManager_LoginSuccess(t *testing.T) {
	api := &mockAuthAPI{loginUser: &client.AuthUser{ID: 7, Email: "a@b.com", Token: "tok123"}}
	m, store, notifier := newTestManager(api)

	if !m.Login("a@b.com", "x") {
		t.Fatal("expected login to succeed")
	}

	if m.State() != StateAuthenticated {
		t.Errorf("expected authenticated state, got %s", m.State())
	}
	current := m.Current()
	want := Session{UserID: 7, Email: "a@b.com", Token: "tok123"}
	if current == nil || *current != want {
		t.Errorf("expected session %+v, got %+v", want, current)
	}

	// The persisted copy must match the in-memory one
	persisted, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if persisted == nil || *persisted != want {
		t.Errorf("expected persisted session %+v, got %+v", want, persisted)
	}

	if len(notifier.successes) != 1 || notifier.successes[0] != "Login successful!" {
		t.Errorf("unexpected notifications: %v", notifier.successes)
	}
}

func TestManager_LoginRejected(t *testing.T) {
	api := &mockAuthAPI{loginErr: &client.APIError{StatusCode: 401, Message: "bad credentials"}}
	m, store, notifier := newTestManager(api)

	if m.Login("a@b.com", "wrong") {
		t.Fatal("expected login to fail")
	}

	if m.State() != StateAnonymous {
		t.Errorf("state must be unchanged, got %s", m.State())
	}
	if m.Current() != nil {
		t.Error("expected no session after rejected login")
	}
	persisted, _ := store.Load()
	if persisted != nil {
		t.Error("nothing must be persisted after rejected login")
	}

	// The backend message is surfaced verbatim
	if len(notifier.errors) != 1 || notifier.errors[0] != "bad credentials" {
		t.Errorf("expected verbatim backend message, got %v", notifier.errors)
	}
}

func TestManager_LoginRejectedWithoutMessage(t *testing.T) {
	api := &mockAuthAPI{loginErr: &client.APIError{StatusCode: 500}}
	m, _, notifier := newTestManager(api)

	if m.Login("a@b.com", "x") {
		t.Fatal("expected login to fail")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Login failed" {
		t.Errorf("expected generic fallback, got %v", notifier.errors)
	}
}

func TestManager_LoginTransportFailure(t *testing.T) {
	api := &mockAuthAPI{loginErr: errors.New("dial tcp: connection refused")}
	m, _, notifier := newTestManager(api)

	if m.Login("a@b.com", "x") {
		t.Fatal("expected login to fail")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state must be unchanged, got %s", m.State())
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Network error. Please try again." {
		t.Errorf("expected generic network message, got %v", notifier.errors)
	}
}

func TestManager_LoginDecodeFailure(t *testing.T) {
	// Malformed response bodies surface like transport errors
	api := &mockAuthAPI{loginErr: &client.DecodeError{Err: errors.New("invalid character '<'")}}
	m, _, notifier := newTestManager(api)

	if m.Login("a@b.com", "x") {
		t.Fatal("expected login to fail")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Network error. Please try again." {
		t.Errorf("expected generic network message, got %v", notifier.errors)
	}
}

func TestManager_LoadingFlagInvariant(t *testing.T) {
	var observedDuringCall bool

	api := &mockAuthAPI{loginUser: &client.AuthUser{ID: 1, Email: "a@b.com", Token: "t"}}
	m, _, _ := newTestManager(api)
	api.onLogin = func() { observedDuringCall = m.Loading() }

	m.Login("a@b.com", "x")

	if !observedDuringCall {
		t.Error("loading flag must be set while the call is in flight")
	}
	if m.Loading() {
		t.Error("loading flag must be clear after the call")
	}

	// Failure branch too
	api.loginUser = nil
	api.loginErr = errors.New("boom")
	observedDuringCall = false

	m.Login("a@b.com", "x")

	if !observedDuringCall {
		t.Error("loading flag must be set during a failing call")
	}
	if m.Loading() {
		t.Error("loading flag must be clear after a failing call")
	}
}

func TestManager_RegisterDoesNotEstablishSession(t *testing.T) {
	m, store, notifier := newTestManager(&mockAuthAPI{})

	if !m.Register("a@b.com", "x") {
		t.Fatal("expected register to succeed")
	}

	if m.State() != StateAnonymous {
		t.Errorf("register must not change state, got %s", m.State())
	}
	persisted, _ := store.Load()
	if persisted != nil {
		t.Error("register must not persist a session")
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != "Registration successful! Please login." {
		t.Errorf("unexpected notifications: %v", notifier.successes)
	}
}

func TestManager_RegisterRejected(t *testing.T) {
	api := &mockAuthAPI{registerErr: &client.APIError{StatusCode: 409, Message: "An account with this email already exists"}}
	m, _, notifier := newTestManager(api)

	if m.Register("a@b.com", "x") {
		t.Fatal("expected register to fail")
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "An account with this email already exists" {
		t.Errorf("expected verbatim backend message, got %v", notifier.errors)
	}
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	api := &mockAuthAPI{loginUser: &client.AuthUser{ID: 7, Email: "a@b.com", Token: "tok"}}
	m, store, notifier := newTestManager(api)

	m.Login("a@b.com", "x")
	m.Logout()

	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous after logout, got %s", m.State())
	}
	if m.Current() != nil {
		t.Error("expected no session after logout")
	}
	persisted, _ := store.Load()
	if persisted != nil {
		t.Error("expected storage cleared after logout")
	}
	if len(notifier.successes) == 0 || notifier.successes[len(notifier.successes)-1] != "Logged out successfully" {
		t.Errorf("unexpected notifications: %v", notifier.successes)
	}
}

func TestManager_LogoutIdempotent(t *testing.T) {
	m, _, _ := newTestManager(&mockAuthAPI{})

	// Logging out while already anonymous must be a safe no-op
	m.Logout()
	m.Logout()

	if m.State() != StateAnonymous {
		t.Errorf("expected anonymous, got %s", m.State())
	}
}

func TestManager_StaleLoginDiscarded(t *testing.T) {
	// A logout issued while a login is still in flight supersedes it:
	// the resolving login must not reinstall its session.
	api := &mockAuthAPI{loginUser: &client.AuthUser{ID: 7, Email: "a@b.com", Token: "tok"}}
	m, store, _ := newTestManager(api)
	api.onLogin = func() { m.Logout() }

	m.Login("a@b.com", "x")

	if m.State() != StateAuthenticated {
		// The logout won; the stale success was discarded.
		if m.Current() != nil {
			t.Error("expected no session after superseded login")
		}
		persisted, _ := store.Load()
		if persisted != nil {
			t.Error("expected no persisted session after superseded login")
		}
		return
	}
	t.Error("stale login response must not win over a later logout")
}
