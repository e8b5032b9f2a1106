package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/zalando/go-keyring"
)

const (
	service = "leadmart-cli"

	keyToken = "token"
	keyEmail = "userEmail"
	keyUser  = "userId"
)

// Session is the authenticated identity held by the client after login.
// The token is stored as issued, in clear text, with no expiry tracking.
type Session struct {
	UserID int
	Email  string
	Token  string
}

// Keychain is the raw key-value backend for session persistence.
// The OS keychain is used by default; tests substitute an in-memory map.
type Keychain interface {
	Set(service, key, value string) error
	Get(service, key string) (string, error)
	Delete(service, key string) error
}

type osKeychain struct{}

func (osKeychain) Set(service, key, value string) error   { return keyring.Set(service, key, value) }
func (osKeychain) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeychain) Delete(service, key string) error        { return keyring.Delete(service, key) }

// Store persists exactly three fields: token, userEmail and userId.
type Store struct {
	keychain Keychain
}

// NewStore creates a session store backed by the OS keychain/credential manager.
func NewStore() *Store {
	return &Store{keychain: osKeychain{}}
}

// NewStoreWithKeychain creates a session store with a custom backend.
func NewStoreWithKeychain(kc Keychain) *Store {
	return &Store{keychain: kc}
}

// Save writes all three session fields.
func (s *Store) Save(sess Session) error {
	if err := s.keychain.Set(service, keyToken, sess.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := s.keychain.Set(service, keyEmail, sess.Email); err != nil {
		return fmt.Errorf("failed to save email: %w", err)
	}
	if err := s.keychain.Set(service, keyUser, strconv.Itoa(sess.UserID)); err != nil {
		return fmt.Errorf("failed to save user id: %w", err)
	}
	return nil
}

// Load returns the persisted session, or nil when there is none.
// A session is only reconstructed when all three fields are present and
// the user id parses as an integer; anything less counts as no session.
func (s *Store) Load() (*Session, error) {
	token, err := s.get(keyToken)
	if err != nil {
		return nil, err
	}
	email, err := s.get(keyEmail)
	if err != nil {
		return nil, err
	}
	rawID, err := s.get(keyUser)
	if err != nil {
		return nil, err
	}

	if token == "" || email == "" || rawID == "" {
		return nil, nil
	}

	userID, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, nil
	}

	return &Session{UserID: userID, Email: email, Token: token}, nil
}

// Token returns the persisted bearer token, or empty string when absent.
func (s *Store) Token() (string, error) {
	return s.get(keyToken)
}

// Clear removes all three session fields. Missing keys are not an error.
func (s *Store) Clear() error {
	for _, key := range []string{keyToken, keyEmail, keyUser} {
		if err := s.keychain.Delete(service, key); err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				continue
			}
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	value, err := s.keychain.Get(service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, nil
}
