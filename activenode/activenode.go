// Package activenode implements the Active-Node Resolver (C6): given a
// caret position, find the deepest node enclosing or adjacent to it and
// its ancestry, modeled on java/at_point.go
// (findNodeAtPosition/positionInSpan), adapted from a pointer-tree walk
// to an id-map/XorNode lookup since there is no single root pointer to
// recurse from here — only leaf ids and parent pointers.
package activenode

import (
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/token"
	"github.com/dhamidi/mq/xnode"
)

// LeafKind classifies how the caret relates to the Active Node's span.
type LeafKind int

const (
	OnAstNode LeafKind = iota
	AfterAstNode
	ContextNode
)

// ActiveNode is the Active Node resolver's output.
type ActiveNode struct {
	Position                     token.Position
	Ancestry                     xnode.Ancestry
	LeafKind                     LeafKind
	MaybeIdentifierUnderPosition *token.Token
}

// Resolve maps pos to its Active Node, or (nil, false) if no context is
// open and no leaf contains or ends at pos. An empty document still has
// open contexts, so it resolves to the innermost of them.
func Resolve(ns *nodemap.State, pos token.Position) (*ActiveNode, bool) {
	coll := ns.Collection

	if id, ok := contextFrontierAt(ns, pos); ok {
		return build(coll, id, pos, ContextNode)
	}

	onID, onOK := bestLeaf(coll, pos, positionStrictlyInside)
	if onOK {
		return build(coll, onID, pos, OnAstNode)
	}

	afterID, afterOK := bestLeaf(coll, pos, positionAtEnd)
	if afterOK {
		return build(coll, afterID, pos, AfterAstNode)
	}

	if ns.MaybeCurrentContextID != nodemap.NoID {
		return build(coll, ns.MaybeCurrentContextID, pos, ContextNode)
	}

	return nil, false
}

// contextFrontierAt reports whether pos sits at or beyond the rightmost
// completed leaf while a context is still open — the "partially parsed
// constructs win over their last-completed sibling" rule // calls out explicitly.
func contextFrontierAt(ns *nodemap.State, pos token.Position) (int, bool) {
	if ns.MaybeCurrentContextID == nodemap.NoID {
		return 0, false
	}
	rightmost := ns.Collection.MaybeRightmostLeaf()
	if rightmost == nodemap.NoID {
		return ns.MaybeCurrentContextID, true
	}
	leaf, ok := ns.Collection.GetAst(rightmost)
	if !ok || leaf.Token == nil {
		return ns.MaybeCurrentContextID, true
	}
	if !positionBefore(pos, leaf.Token.Span.End) {
		return ns.MaybeCurrentContextID, true
	}
	return 0, false
}

type matchFn func(pos token.Position, span token.Span) bool

// bestLeaf scans leafNodeIds for the leaf whose span matches, preferring
// the one that starts latest (closest to the caret) when several match
// — tokens never overlap, so in practice at most one ever does.
func bestLeaf(coll *nodemap.Collection, pos token.Position, match matchFn) (int, bool) {
	best := 0
	found := false
	for id := range coll.LeafIDs() {
		node, ok := coll.GetAst(id)
		if !ok || node.Token == nil {
			continue
		}
		if !match(pos, node.Token.Span) {
			continue
		}
		if !found || positionBefore(bestSpan(coll, best), node.Token.Span.Start) {
			best = id
			found = true
		}
	}
	return best, found
}

func bestSpan(coll *nodemap.Collection, id int) token.Position {
	if node, ok := coll.GetAst(id); ok && node.Token != nil {
		return node.Token.Span.Start
	}
	return token.Position{}
}

func positionStrictlyInside(pos token.Position, span token.Span) bool {
	return positionBefore(span.Start, pos) && positionBefore(pos, span.End)
}

func positionAtEnd(pos token.Position, span token.Span) bool {
	return positionEqual(pos, span.End)
}

func positionBefore(a, b token.Position) bool { return a.CodeUnit < b.CodeUnit }
func positionEqual(a, b token.Position) bool  { return a.CodeUnit == b.CodeUnit }

func build(coll *nodemap.Collection, id int, pos token.Position, kind LeafKind) (*ActiveNode, bool) {
	ancestry := xnode.AssertGetAncestry(coll, id)
	an := &ActiveNode{
		Position: pos,
		Ancestry: ancestry,
		LeafKind: kind,
	}
	if node, ok := coll.GetAst(id); ok && node.Token != nil {
		if node.Kind == ast.KindIdentifier || node.Kind == ast.KindGeneralizedIdentifier {
			an.MaybeIdentifierUnderPosition = node.Token
		}
	}
	return an, true
}
