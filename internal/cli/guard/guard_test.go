package guard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/leadmart-dev/leadmart/internal/cli/session"
)

type fixedState session.State

func (s fixedState) State() session.State { return session.State(s) }

func TestRun_AnonymousRejects(t *testing.T) {
	var out bytes.Buffer
	invoked := false

	err := Run(fixedState(session.StateAnonymous), &out, func() error {
		invoked = true
		return nil
	})

	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
	if invoked {
		t.Error("action must never run while anonymous")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRun_AuthenticatedRunsAction(t *testing.T) {
	var out bytes.Buffer
	invoked := false

	err := Run(fixedState(session.StateAuthenticated), &out, func() error {
		invoked = true
		return nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !invoked {
		t.Error("action must run while authenticated")
	}
}

func TestRun_AuthenticatedPropagatesActionError(t *testing.T) {
	var out bytes.Buffer
	actionErr := errors.New("boom")

	err := Run(fixedState(session.StateAuthenticated), &out, func() error {
		return actionErr
	})

	if !errors.Is(err, actionErr) {
		t.Errorf("expected action error, got %v", err)
	}
}

func TestRun_InitializingDefersWithoutRunning(t *testing.T) {
	var out bytes.Buffer
	invoked := false

	err := Run(fixedState(session.StateInitializing), &out, func() error {
		invoked = true
		return nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if invoked {
		t.Error("action must not run while the session is being recovered")
	}
	if out.String() != "Loading session...\n" {
		t.Errorf("unexpected output: %q", out.String())
	}
}
