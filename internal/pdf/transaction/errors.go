package transaction

import (
	"fmt"
	"strings"
)

// Problem is one validation finding against a rename batch. Rule names the
// check that fired so callers can group findings.
type Problem struct {
	OldFQN  string `json:"old_fqn"`
	NewName string `json:"new_name,omitempty"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError rejects a batch. It carries every problem found, not just
// the first, so a caller can fix the whole mapping in one pass.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("rename batch rejected: %s", e.Problems[0].Message)
	}
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}
	return fmt.Sprintf("rename batch rejected (%d problems): %s",
		len(e.Problems), strings.Join(msgs, "; "))
}

// StateError reports a transaction driven out of order or reused after a
// terminal state.
type StateError struct {
	State State
	Op    string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s a transaction in state %s", e.Op, e.State)
}

// CommitError wraps a serialization failure. The transaction rolls back and
// the document on disk is untouched.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed, transaction rolled back: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
