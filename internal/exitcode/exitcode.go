// Package exitcode defines process exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation failure).
	UserError = 1

	// AuthError indicates a missing, expired or rejected session.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
