package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"todocli/internal/cli"
	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/service"
	"todocli/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

func run(t *testing.T, svc *testutil.FakeService, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, strings.NewReader(""), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testutil.NewFakeService(), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testutil.NewFakeService(), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	stdout, stderr, code := run(t, testutil.NewFakeService(), "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	stdout, stderr, code := run(t, testutil.NewFakeService(), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todocli 0.1.0\n" {
		t.Errorf("expected 'todocli 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	_, stderr, code := run(t, testutil.NewFakeService(), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_AuthCommandWithoutSession(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", t.TempDir()}, strings.NewReader(""), &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := "error: not logged in (run: todocli login)\n"
	if errBuf.String() != expected {
		t.Errorf("expected %q, got %q", expected, errBuf.String())
	}
}

func TestDispatcher_LoginThenList(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	configDir := t.TempDir()

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(),
		[]string{"login", "--config", configDir, "--email", "user@example.com", "--password", "password123"},
		strings.NewReader(""), &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Fatalf("login failed: %d (stderr %q)", code, errBuf.String())
	}

	outBuf.Reset()
	code = dispatcher.Run(context.Background(), []string{"list", "--config", configDir}, strings.NewReader(""), &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Fatalf("list failed: %d (stderr %q)", code, errBuf.String())
	}
	if outBuf.String() != "no tasks found\n" {
		t.Errorf("unexpected output %q", outBuf.String())
	}
}

func TestDispatcher_QuietSuppressesInfoOutput(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	configDir := t.TempDir()

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(),
		[]string{"login", "--quiet", "--config", configDir, "--email", "user@example.com", "--password", "password123"},
		strings.NewReader(""), &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Fatalf("login failed: %d", code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no output with --quiet, got %q", outBuf.String())
	}
}
