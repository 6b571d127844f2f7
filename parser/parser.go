package parser

import (
	"github.com/dhamidi/mq/lexer"
	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/perror"
)

// Ok is ParseOk: the successful result of a tryRead call.
type Ok struct {
	Root    int
	Nodes   *nodemap.Collection
	LeafIDs map[int]bool
	State   *State
}

// Failure is ParseError: state is preserved so a caller can
// still run the Active-Node Resolver / Autocomplete Engine over a
// partially-parsed document.
type Failure struct {
	State *State
	Inner error
}

func (f *Failure) Error() string { return f.Inner.Error() }
func (f *Failure) Unwrap() error { return f.Inner }

// Result is TriedParse sum type, rendered as Go's usual
// (value, error) shape: exactly one of Ok/err is meaningful.
type Result struct {
	Ok  *Ok
	Err *Failure
}

// Nodes returns the nodemap.State behind either outcome — a Failure
// still carries one, per , so inspection tools (the
// Active-Node Resolver, Autocomplete, Type Inference) can run against a
// partially-parsed document exactly as they would against a complete
// one.
func (r *Result) Nodes() *nodemap.State {
	if r.Ok != nil {
		return r.Ok.State.Nodes
	}
	if r.Err != nil {
		return r.Err.State.Nodes
	}
	return nil
}

// Snapshot returns the LexerSnapshot behind either outcome, for
// translating editor line/column positions into token.Position values.
func (r *Result) Snapshot() *lexer.LexerSnapshot {
	if r.Ok != nil {
		return r.Ok.State.Snapshot
	}
	if r.Err != nil {
		return r.Err.State.Snapshot
	}
	return nil
}

// Parse tokenizes src and runs the Document production through tryRead,
// the entry point every consumer (CLI, LSP, tests) goes through.
func Parse(src []byte, opts ...Option) *Result {
	settings := NewSettings(opts...)
	state := NewState(src, settings)
	return tryRead(state, settings.Readers.Document)
}

// tryRead is the parser's top-level driver: invoke the reader inside a
// fault boundary, then assert the two postconditions of a complete
// parse (no open context, no leftover tokens) before reporting success.
func tryRead(state *State, reader ReaderFunc) *Result {
	rootID, err := reader(state)
	if err != nil {
		return &Result{Err: asFailure(state, err)}
	}

	if state.Nodes.MaybeCurrentContextID != nodemap.NoID {
		return &Result{Err: asFailure(state, &perror.InvariantError{
			Message: "tryRead: reader returned without closing every open context",
		})}
	}

	if !state.atEOF() {
		return &Result{Err: asFailure(state, &perror.UnusedTokensRemainError{
			FirstUnused: state.peek(),
		})}
	}

	return &Result{Ok: &Ok{
		Root:    rootID,
		Nodes:   state.Nodes.Collection,
		LeafIDs: state.Nodes.Collection.LeafIDs(),
		State:   state,
	}}
}

func asFailure(state *State, err error) *Failure {
	if f, ok := err.(*Failure); ok {
		return f
	}
	return &Failure{State: state, Inner: err}
}
