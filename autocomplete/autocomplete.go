package autocomplete

import (
	"github.com/dhamidi/mq/activenode"
	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/token"
)

// Suggestions is the combined result of both autocomplete pipelines at a
// single caret position.
type Suggestions struct {
	Keywords       []token.Kind
	PrimitiveTypes []string
}

// Complete runs both the keyword and primitive-type pipelines against
// the same Active Node and trailing token — the two independent,
// concurrently-applicable suggestion sources.
func Complete(coll *nodemap.Collection, an *activenode.ActiveNode, maybeTrailing *token.Token) Suggestions {
	return Suggestions{
		Keywords:       Keywords(coll, an, maybeTrailing),
		PrimitiveTypes: PrimitiveTypes(coll, an, maybeTrailing),
	}
}
