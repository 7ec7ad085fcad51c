package commands

import (
	"fmt"
	"io"

	"todocli/internal/api"
	"todocli/internal/exitcode"
)

// reportError prints a backend failure and returns the matching exit code.
// A 401 means the stored token was already cleared by the client.
func reportError(errOut io.Writer, err error) int {
	if api.IsUnauthorized(err) {
		fmt.Fprintf(errOut, "error: session expired (run: todocli login)\n")
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
