// Package session holds the authenticated identity and bearer token for the
// current client, persisted to the config directory.
package session

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"todocli/internal/api"
)

// TokenTTL is the fixed lifetime of a stored bearer token. The backend
// issues tokens with the same one-day expiry.
const TokenTTL = 24 * time.Hour

// Credentials is the persisted session file: the bearer token plus the
// identity returned by login/register.
type Credentials struct {
	Token oauth2.Token `json:"token"`
	User  api.User     `json:"user"`
}

// TokenStore is the single mutation point for the persisted session.
// Updates are read-replace: the file is rewritten whole, never patched.
// Reads go to disk so every consumer sees replacements immediately.
type TokenStore struct {
	mu   sync.Mutex
	path string
}

// NewTokenStore creates a store backed by the session file at path.
func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Credentials returns the stored credentials, or false when absent,
// unreadable, or expired.
func (s *TokenStore) Credentials() (Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// AccessToken implements api.TokenSource. Returns "" when logged out.
func (s *TokenStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds, ok := s.read()
	if !ok {
		return ""
	}
	return creds.Token.AccessToken
}

// Invalidate implements api.TokenSource: removes the persisted session.
// Called on logout and whenever the backend answers 401.
func (s *TokenStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.Remove(s.path)
}

// Save persists a fresh token and identity atomically with mode 0600.
func (s *TokenStore) Save(accessToken, tokenType string, user api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := Credentials{
		Token: oauth2.Token{
			AccessToken: accessToken,
			TokenType:   tokenType,
			Expiry:      time.Now().Add(TokenTTL),
		},
		User: user,
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// read loads and validates the session file. Caller holds the lock.
func (s *TokenStore) read() (Credentials, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}, false
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false
	}
	if !creds.Token.Valid() {
		return Credentials{}, false
	}
	return creds, true
}
