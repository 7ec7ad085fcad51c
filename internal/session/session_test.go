package session_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"todocli/internal/api"
	"todocli/internal/session"
	"todocli/internal/testutil"
)

func newStore(t *testing.T) (*session.TokenStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return session.NewTokenStore(path), path
}

func TestTokenStore_SaveAndRead(t *testing.T) {
	tokens, path := newStore(t)

	user := api.User{ID: "user-1", Email: "user@example.com"}
	if err := tokens.Save("tok-123", "bearer", user); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("session file mode = %v, want 0600", info.Mode().Perm())
	}

	creds, ok := tokens.Credentials()
	if !ok {
		t.Fatal("expected stored credentials")
	}
	if creds.Token.AccessToken != "tok-123" || creds.User.Email != "user@example.com" {
		t.Errorf("unexpected credentials %+v", creds)
	}
	if tokens.AccessToken() != "tok-123" {
		t.Errorf("unexpected access token %q", tokens.AccessToken())
	}
}

func TestTokenStore_ExpiredTokenIsLoggedOut(t *testing.T) {
	tokens, path := newStore(t)

	creds := session.Credentials{
		Token: oauth2.Token{
			AccessToken: "tok-old",
			TokenType:   "bearer",
			Expiry:      time.Now().Add(-time.Hour),
		},
		User: api.User{ID: "user-1", Email: "user@example.com"},
	}
	data, err := json.Marshal(creds)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	if tokens.AccessToken() != "" {
		t.Error("expired token must read as logged out")
	}
	if _, ok := tokens.Credentials(); ok {
		t.Error("expired credentials must not be returned")
	}
}

func TestTokenStore_InvalidateRemovesFile(t *testing.T) {
	tokens, path := newStore(t)
	if err := tokens.Save("tok", "bearer", api.User{ID: "u"}); err != nil {
		t.Fatal(err)
	}

	tokens.Invalidate()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file should be removed")
	}
	if tokens.AccessToken() != "" {
		t.Error("invalidated store must hand out no token")
	}
}

func TestTokenStore_CorruptFileIsLoggedOut(t *testing.T) {
	tokens, path := newStore(t)
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := tokens.Credentials(); ok {
		t.Error("corrupt session file must read as logged out")
	}
}

func TestStore_LoginInstallsSession(t *testing.T) {
	tokens, _ := newStore(t)
	svc := testutil.NewFakeService()
	sess := session.New(tokens, svc)

	user, err := sess.Login(context.Background(), "user@example.com", "password123")
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "user@example.com" {
		t.Errorf("unexpected user %+v", user)
	}
	if !sess.IsAuthenticated() {
		t.Error("expected authenticated session")
	}
	if tokens.AccessToken() == "" {
		t.Error("token must be persisted")
	}
}

func TestStore_LoginFailureLeavesLoggedOut(t *testing.T) {
	tokens, _ := newStore(t)
	svc := testutil.NewFakeService()
	sess := session.New(tokens, svc)

	if _, err := sess.Login(context.Background(), "user@example.com", "wrong"); err == nil {
		t.Fatal("expected error")
	}
	if sess.IsAuthenticated() {
		t.Error("failed login must not authenticate")
	}
	if tokens.AccessToken() != "" {
		t.Error("no token must be persisted")
	}
}

func TestStore_LoadSilentlyDiscardsBadSession(t *testing.T) {
	tokens, _ := newStore(t)
	if err := tokens.Save("tok-stale", "bearer", api.User{ID: "u", Email: "user@example.com"}); err != nil {
		t.Fatal(err)
	}

	svc := testutil.NewFakeService()
	svc.CurrentUserErr = &api.Error{Status: 401, Detail: "Could not validate credentials"}
	sess := session.New(tokens, svc)

	sess.Load(context.Background())

	if sess.IsAuthenticated() {
		t.Error("failed identity fetch must leave the store logged out")
	}
	if tokens.AccessToken() != "" {
		t.Error("stale token must be discarded")
	}
}

func TestStore_LoadRestoresSession(t *testing.T) {
	tokens, _ := newStore(t)
	if err := tokens.Save("tok", "bearer", api.User{ID: "u", Email: "user@example.com"}); err != nil {
		t.Fatal(err)
	}

	sess := session.New(tokens, testutil.NewFakeService())
	sess.Load(context.Background())

	if !sess.IsAuthenticated() {
		t.Fatal("expected restored session")
	}
	user, ok := sess.CurrentUser()
	if !ok || user.Email != "user@example.com" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestStore_LogoutClearsLocalStateOnRemoteFailure(t *testing.T) {
	tokens, path := newStore(t)
	svc := testutil.NewFakeService()
	sess := session.New(tokens, svc)

	if _, err := sess.Login(context.Background(), "user@example.com", "password123"); err != nil {
		t.Fatal(err)
	}

	svc.LogoutErr = &api.Error{Status: 500, Detail: "boom"}
	if err := sess.Logout(context.Background()); err == nil {
		t.Error("remote failure should be reported")
	}

	if sess.IsAuthenticated() {
		t.Error("local session must be cleared regardless")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file must be removed regardless")
	}
}
