// Package transaction drives a rename batch through validate, mutate and
// commit with all-or-nothing semantics. The document on disk is never
// touched until the mutated object graph has serialized cleanly; any
// failure before that point leaves the caller holding the original bytes.
package transaction

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/wsekete/PDFParseV2/internal/pdf/fields"
	"github.com/wsekete/PDFParseV2/internal/pdf/rename"
)

// State tracks a transaction through its lifecycle. Committed, Rejected and
// RolledBack are terminal; a transaction is single-use.
type State string

const (
	StatePending    State = "pending"
	StateValidated  State = "validated"
	StateMutated    State = "mutated"
	StateCommitted  State = "committed"
	StateRejected   State = "rejected"
	StateRolledBack State = "rolled_back"
)

// Serializer turns a mutated context back into document bytes. Injectable
// so tests can force a commit failure.
type Serializer func(*model.Context) ([]byte, error)

func defaultSerializer(ctx *model.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Transaction applies one rename batch to one document.
type Transaction struct {
	state     State
	ctx       *model.Context
	arena     *fields.Arena
	original  []byte
	pairs     []rename.Pair
	serialize Serializer
	report    *rename.Report
	problems  []Problem
}

// Option configures a transaction.
type Option func(*Transaction)

// WithSerializer replaces the pdfcpu writer. Test hook.
func WithSerializer(s Serializer) Option {
	return func(t *Transaction) { t.serialize = s }
}

// New builds a pending transaction over an already extracted document.
// original is the untouched input; it is what every failure path hands
// back.
func New(ctx *model.Context, arena *fields.Arena, original []byte, pairs []rename.Pair, opts ...Option) *Transaction {
	t := &Transaction{
		state:     StatePending,
		ctx:       ctx,
		arena:     arena,
		original:  original,
		pairs:     pairs,
		serialize: defaultSerializer,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current lifecycle state.
func (t *Transaction) State() State {
	return t.state
}

// Problems returns the validation findings of a rejected transaction.
func (t *Transaction) Problems() []Problem {
	return t.problems
}

// Report returns the rename report once the batch has been applied.
func (t *Transaction) Report() *rename.Report {
	return t.report
}

// Validate checks the whole batch. Any problem moves the transaction to
// Rejected; the object graph is untouched either way.
func (t *Transaction) Validate() error {
	if t.state != StatePending {
		return &StateError{State: t.state, Op: "validate"}
	}
	if problems := validateBatch(t.arena, t.pairs); len(problems) > 0 {
		t.state = StateRejected
		t.problems = problems
		return &ValidationError{Problems: problems}
	}
	t.state = StateValidated
	return nil
}

// Mutate applies the batch to the in-memory object graph. The engine
// re-resolves every source itself; a failure here means the arena and
// validation disagree, which is a bug, and the transaction rolls back.
func (t *Transaction) Mutate() error {
	if t.state != StateValidated {
		return &StateError{State: t.state, Op: "mutate"}
	}
	report, err := rename.Apply(t.arena, t.pairs)
	if err != nil {
		t.state = StateRolledBack
		return err
	}
	t.state = StateMutated
	t.report = report
	return nil
}

// Commit serializes the mutated graph. On failure the transaction rolls
// back and the returned bytes are the original document.
func (t *Transaction) Commit() ([]byte, error) {
	if t.state != StateMutated {
		return nil, &StateError{State: t.state, Op: "commit"}
	}
	out, err := t.serialize(t.ctx)
	if err != nil {
		t.state = StateRolledBack
		return t.original, &CommitError{Err: err}
	}
	t.state = StateCommitted
	return out, nil
}

// Outcome is the result of a full transaction run.
type Outcome struct {
	State    State          `json:"state"`
	Bytes    []byte         `json:"-"`
	Report   *rename.Report `json:"report,omitempty"`
	Problems []Problem      `json:"problems,omitempty"`
}

// Run drives the transaction end to end. The returned outcome always holds
// usable bytes: the mutated document on commit, the original on every
// failure path.
func (t *Transaction) Run() (*Outcome, error) {
	if err := t.Validate(); err != nil {
		return &Outcome{State: t.state, Bytes: t.original, Problems: t.problems}, err
	}
	if err := t.Mutate(); err != nil {
		return &Outcome{State: t.state, Bytes: t.original}, err
	}
	out, err := t.Commit()
	if err != nil {
		return &Outcome{State: t.state, Bytes: out}, err
	}
	return &Outcome{State: t.state, Bytes: out, Report: t.report}, nil
}
