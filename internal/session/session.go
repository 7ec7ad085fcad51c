package session

import (
	"context"
	"sync"

	"todocli/internal/api"
	"todocli/internal/service"
)

// Store exposes login, register, logout and "am I authenticated" to the rest
// of the app, on top of the persisted token and the backend auth endpoints.
type Store struct {
	tokens *TokenStore
	svc    service.Service

	mu   sync.Mutex
	user *api.User
}

// New creates a session store. Call Load to pick up a persisted session.
func New(tokens *TokenStore, svc service.Service) *Store {
	return &Store{tokens: tokens, svc: svc}
}

// Load checks for a persisted token and, if present, fetches the current
// identity. Any failure discards the token and leaves the store logged out;
// no error is surfaced.
func (s *Store) Load(ctx context.Context) {
	if _, ok := s.tokens.Credentials(); !ok {
		return
	}
	user, err := s.svc.CurrentUser(ctx)
	if err != nil {
		s.tokens.Invalidate()
		return
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// Login authenticates and stores the returned token and identity atomically.
func (s *Store) Login(ctx context.Context, email, password string) (api.User, error) {
	resp, err := s.svc.Login(ctx, email, password)
	if err != nil {
		return api.User{}, err
	}
	return s.install(resp)
}

// Register creates an account and stores the token and identity atomically.
func (s *Store) Register(ctx context.Context, email, password string) (api.User, error) {
	resp, err := s.svc.Register(ctx, email, password)
	if err != nil {
		return api.User{}, err
	}
	return s.install(resp)
}

// Logout clears the server session, then the local one. Local state is
// cleared even when the remote call fails; the remote error is returned so
// the caller can report it.
func (s *Store) Logout(ctx context.Context) error {
	err := s.svc.Logout(ctx)
	s.tokens.Invalidate()
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return err
}

// IsAuthenticated reports whether an identity is loaded.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// CurrentUser returns the loaded identity.
func (s *Store) CurrentUser() (api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// Tokens returns the underlying token store.
func (s *Store) Tokens() *TokenStore {
	return s.tokens
}

func (s *Store) install(resp api.AuthResponse) (api.User, error) {
	if err := s.tokens.Save(resp.AccessToken, resp.TokenType, resp.User); err != nil {
		return api.User{}, err
	}
	s.mu.Lock()
	s.user = &resp.User
	s.mu.Unlock()
	return resp.User, nil
}
