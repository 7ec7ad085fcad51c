package commands_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/testutil"
)

func TestLoginCommand_WithFlags(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("user@example.com", "password123")

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "logged in as user@example.com\n" {
		t.Errorf("unexpected output %q", outBuf.String())
	}
	if _, err := os.Stat(cfg.SessionPath()); err != nil {
		t.Errorf("session file should exist: %v", err)
	}
}

func TestLoginCommand_PromptsForMissingCredentials(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}

	cmd := &commands.LoginCmd{}

	var outBuf, errBuf bytes.Buffer
	stdin := strings.NewReader("user@example.com\npassword123\n")
	code := cmd.Run(context.Background(), cfg, svc, nil, stdin, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "email: ") || !strings.Contains(errBuf.String(), "password: ") {
		t.Errorf("expected prompts on stderr, got %q", errBuf.String())
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}

	cmd := &commands.LoginCmd{}
	cmd.SetCredentials("user@example.com", "wrong")

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(errBuf.String(), "Incorrect email or password") {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
	if _, err := os.Stat(cfg.SessionPath()); err == nil {
		t.Error("no session file should be written on failure")
	}
}

func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}

	login := &commands.LoginCmd{}
	login.SetCredentials("user@example.com", "password123")
	var outBuf, errBuf bytes.Buffer
	if code := login.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf); code != exitcode.Success {
		t.Fatalf("setup login failed: %d", code)
	}

	outBuf.Reset()
	again := &commands.LoginCmd{}
	code := again.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "already logged in\n" {
		t.Errorf("unexpected output %q", outBuf.String())
	}
}

func TestRegisterCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}

	cmd := &commands.RegisterCmd{}
	cmd.SetCredentials("new@example.com", "password123")

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "registered as new@example.com\n" {
		t.Errorf("unexpected output %q", outBuf.String())
	}
	if _, err := os.Stat(cfg.SessionPath()); err != nil {
		t.Errorf("session file should exist: %v", err)
	}
}

func TestRegisterCommand_DuplicateEmail(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}

	cmd := &commands.RegisterCmd{}
	cmd.SetCredentials("user@example.com", "password123")

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(errBuf.String(), "already registered") {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}

	cmd := &commands.LogoutCmd{}
	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "not logged in\n" {
		t.Errorf("unexpected output %q", outBuf.String())
	}
}

func TestLogoutCommand_ClearsSessionEvenWhenServerFails(t *testing.T) {
	svc := testutil.NewFakeService()
	cfg := &config.Config{Dir: t.TempDir()}

	login := &commands.LoginCmd{}
	login.SetCredentials("user@example.com", "password123")
	var outBuf, errBuf bytes.Buffer
	if code := login.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf); code != exitcode.Success {
		t.Fatalf("setup login failed: %d", code)
	}

	svc.LogoutErr = testutil.ErrBadCredentials

	outBuf.Reset()
	errBuf.Reset()
	cmd := &commands.LogoutCmd{}
	code := cmd.Run(context.Background(), cfg, svc, nil, strings.NewReader(""), &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(errBuf.String(), "server logout failed") {
		t.Errorf("expected warning, got %q", errBuf.String())
	}
	if _, err := os.Stat(cfg.SessionPath()); err == nil {
		t.Error("session file should be removed")
	}
}
