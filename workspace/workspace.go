// Package workspace mirrors java/codebase's role: a thread-safe,
// in-memory store of the most recent parse result per open document,
// shared by the CLI and the LSP server so both drive the same
// inspection pipeline.
package workspace

import (
	"sync"

	"github.com/dhamidi/mq/activenode"
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/autocomplete"
	"github.com/dhamidi/mq/parser"
	"github.com/dhamidi/mq/token"
	"github.com/dhamidi/mq/typeinfer"
	"github.com/dhamidi/mq/xnode"
)

// Document is one open file's text plus its most recent parse attempt.
type Document struct {
	URI    string
	Text   string
	Result *parser.Result
}

// Workspace holds every open Document, keyed by URI/path.
type Workspace struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// New returns an empty Workspace.
func New() *Workspace {
	return &Workspace{docs: make(map[string]*Document)}
}

// Update (re)parses text and stores it under uri, replacing whatever was
// there before — matching codebase.go's updateFileLocked's
// reparse-on-every-edit policy.
func (w *Workspace) Update(uri, text string, opts ...parser.Option) {
	result := parser.Parse([]byte(text), opts...)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[uri] = &Document{URI: uri, Text: text, Result: result}
}

// Get returns the Document stored under uri, if any.
func (w *Workspace) Get(uri string) (*Document, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	d, ok := w.docs[uri]
	return d, ok
}

// Remove discards a closed document.
func (w *Workspace) Remove(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, uri)
}

// PositionAt translates a 1-based line / 0-based column (the shape both
// LSP requests and this module's CLI flags use) into the token.Position
// every inspection call expects.
func (w *Workspace) PositionAt(uri string, line, column int) (token.Position, bool) {
	doc, ok := w.Get(uri)
	if !ok {
		return token.Position{}, false
	}
	snap := doc.Result.Snapshot()
	if snap == nil {
		return token.Position{}, false
	}
	return snap.PositionAt(line, column), true
}

// CompletionsAt runs the Autocomplete Engine (C7) at pos against the
// document's current parse state.
func (w *Workspace) CompletionsAt(uri string, pos token.Position) (autocomplete.Suggestions, bool) {
	doc, ok := w.Get(uri)
	if !ok {
		return autocomplete.Suggestions{}, false
	}
	ns := doc.Result.Nodes()
	if ns == nil {
		return autocomplete.Suggestions{}, false
	}
	active, ok := activenode.Resolve(ns, pos)
	if !ok {
		return autocomplete.Suggestions{}, false
	}
	return autocomplete.Complete(ns.Collection, active, nil), true
}

// AncestryAt resolves pos to its Active Node and returns its ancestry,
// leaf first, for manual inspection (the `ancestry` CLI subcommand).
func (w *Workspace) AncestryAt(uri string, pos token.Position) (xnode.Ancestry, bool) {
	doc, ok := w.Get(uri)
	if !ok {
		return nil, false
	}
	ns := doc.Result.Nodes()
	if ns == nil {
		return nil, false
	}
	active, ok := activenode.Resolve(ns, pos)
	if !ok {
		return nil, false
	}
	return active.Ancestry, true
}

// TypeAt runs the Binary-Op Type Inference engine (C8) at pos: it walks
// up from the Active Node's ancestry to the nearest TBinOpExpression
// node and infers its type, matching an LSP hover request's shape —
// "what type is the expression under my cursor" — against a contract
// that is scoped to binary-op nodes specifically.
func (w *Workspace) TypeAt(uri string, pos token.Position) (*typeinfer.TType, bool) {
	doc, ok := w.Get(uri)
	if !ok {
		return nil, false
	}
	ns := doc.Result.Nodes()
	if ns == nil {
		return nil, false
	}
	active, ok := activenode.Resolve(ns, pos)
	if !ok {
		return nil, false
	}
	for _, n := range active.Ancestry {
		if ast.IsBinOp(n.Kind()) {
			return typeinfer.Infer(ns.Collection, n), true
		}
	}
	return nil, false
}
