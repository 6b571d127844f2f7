package parser

import "github.com/dhamidi/mq/cancel"

// ReaderFunc is the signature every production implements: read the next
// construct starting at the current token, returning the promoted AST
// node's id.
type ReaderFunc func(*State) (int, error)

// Readers is the capability record: roughly one reader per grammar
// nonterminal, bundled as function pointers so a caller can override
// individual productions without subclassing, modeled on the
// function-pointer `entry parseFunc` field on Parser.
type Readers struct {
	Document      ReaderFunc
	Section       ReaderFunc
	SectionMember ReaderFunc
	Expression    ReaderFunc
}

// DefaultReaders returns the built-in production table.
func DefaultReaders() *Readers {
	return &Readers{
		Document:      readDocument,
		Section:       readSection,
		SectionMember: readSectionMember,
		Expression:    readExpression,
	}
}

// Settings bundles everything a parse run needs besides the source text.
type Settings struct {
	Readers     *Readers
	CancelToken cancel.Token
}

// Option configures a Settings value, following the
// `type Option func(*Parser)` functional-options pattern.
type Option func(*Settings)

// NewSettings builds default Settings, applying opts in order.
func NewSettings(opts ...Option) *Settings {
	s := &Settings{
		Readers:     DefaultReaders(),
		CancelToken: cancel.None(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCancelToken overrides the cancellation token consulted at every
// production entry.
func WithCancelToken(t cancel.Token) Option {
	return func(s *Settings) { s.CancelToken = t }
}

// WithReaders overrides the production table wholesale; callers wanting
// to override a single production should copy DefaultReaders() and
// replace one field.
func WithReaders(r *Readers) Option {
	return func(s *Settings) { s.Readers = r }
}
