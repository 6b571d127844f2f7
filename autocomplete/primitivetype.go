package autocomplete

import (
	"strings"

	"github.com/dhamidi/mq/activenode"
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/token"
	"github.com/dhamidi/mq/xnode"
)

// PrimitiveTypes runs the primitive-type-autocomplete pipeline: the
// closed, prefix-filtered set of primitive type-name spellings valid at
// the caret, or nil if the caret isn't in a type-name slot at all.
func PrimitiveTypes(coll *nodemap.Collection, an *activenode.ActiveNode, maybeTrailing *token.Token) []string {
	if !ancestryEntersTypeSlot(coll, an.Ancestry) {
		return nil
	}
	prefix := positionName(an, maybeTrailing)
	return filterPrimitiveTypesByPrefix(token.PrimitiveTypeNames, prefix)
}

// ancestryEntersTypeSlot reports whether the caret's ancestry passes
// through a type-name slot. AsExpression/IsExpression are the generic
// binary-operator productions "as"/"is" bottom out at, and their type
// operand is specifically the right-hand (attribute index 2) child — the
// left-hand (value) side of "xy is number" also has these kinds in its
// ancestry chain, so the attribute index of the child the walk arrived
// through must be checked, not just the presence of the parent kind.
func ancestryEntersTypeSlot(coll *nodemap.Collection, ancestry xnode.Ancestry) bool {
	for i, n := range ancestry {
		switch n.Kind() {
		case ast.KindTypePrimaryType, ast.KindNullablePrimitiveType, ast.KindAsNullablePrimitiveType:
			return true
		case ast.KindAsExpression, ast.KindIsExpression:
			if i == 0 {
				continue
			}
			child := ancestry[i-1]
			if idx, ok := xnode.AttributeIndex(coll, child.ID()); ok && idx == 2 {
				return true
			}
		}
	}
	return false
}

func filterPrimitiveTypesByPrefix(names []string, prefix string) []string {
	if prefix == "" {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}
