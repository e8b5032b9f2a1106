// Package guard gates protected commands on the auth session state, the
// way the web client gates protected routes.
package guard

import (
	"errors"
	"fmt"
	"io"

	"github.com/leadmart-dev/leadmart/internal/cli/session"
)

// ErrNotAuthenticated is returned when a protected action is attempted
// while anonymous.
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'leadmart login' first")

// SessionState is the slice of the session manager the guard consults.
type SessionState interface {
	State() session.State
}

// Run checks the session state once and either runs the protected action,
// rejects it, or reports that the session is still being recovered. The
// action is never invoked unless the state is authenticated.
func Run(s SessionState, out io.Writer, action func() error) error {
	switch s.State() {
	case session.StateInitializing:
		fmt.Fprintln(out, "Loading session...")
		return nil
	case session.StateAuthenticated:
		return action()
	default:
		return ErrNotAuthenticated
	}
}
