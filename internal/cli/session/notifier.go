package session

import (
	"fmt"
	"io"
	"os"
)

// Notifier surfaces transient user-facing notifications (the toast
// analogue for a terminal).
type Notifier interface {
	Success(message string)
	Error(message string)
}

// TerminalNotifier prints notifications to a writer, stderr by default.
type TerminalNotifier struct {
	Out io.Writer
}

// NewTerminalNotifier creates a notifier writing to stderr.
func NewTerminalNotifier() *TerminalNotifier {
	return &TerminalNotifier{Out: os.Stderr}
}

func (n *TerminalNotifier) Success(message string) {
	fmt.Fprintf(n.Out, "✓ %s\n", message)
}

func (n *TerminalNotifier) Error(message string) {
	fmt.Fprintf(n.Out, "✗ %s\n", message)
}
