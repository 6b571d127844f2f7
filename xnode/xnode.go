// Package xnode implements the XorNode view (C5): a uniform
// "either AST or Context" handle over nodemap.Collection, plus the
// ancestry and navigation primitives every inspection algorithm
// (C6/C7/C8) is built from.
package xnode

import (
	"fmt"

	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/nodemap"
)

// Tag discriminates the two XorNode variants.
type Tag int

const (
	TagAst Tag = iota
	TagContext
)

// Node is the discriminated "either AST or Context" view the whole
// design centers on: every downstream algorithm dispatches on Kind()
// without caring whether the node underneath is finished or still open.
type Node struct {
	Tag     Tag
	AstNode *ast.Node
	Context *nodemap.ContextNode
}

// FromID looks id up in coll, wrapping whichever map holds it.
func FromID(coll *nodemap.Collection, id int) (Node, bool) {
	if n, ok := coll.GetAst(id); ok {
		return Node{Tag: TagAst, AstNode: n}, true
	}
	if n, ok := coll.GetContext(id); ok {
		return Node{Tag: TagContext, Context: n}, true
	}
	return Node{}, false
}

// ID returns the node's id, valid for both variants.
func (n Node) ID() int {
	if n.Tag == TagAst {
		return n.AstNode.ID
	}
	return n.Context.ID
}

// Kind returns the node's ast.Kind, valid for both variants.
func (n Node) Kind() ast.Kind {
	if n.Tag == TagAst {
		return n.AstNode.Kind
	}
	return n.Context.Kind
}

// IsContext reports whether the node is still an open parse context
// (no AST payload yet).
func (n Node) IsContext() bool { return n.Tag == TagContext }

// Ancestry is a leaf-first sequence of XorNodes: Ancestry[0] is the node
// itself, Ancestry[len-1] is the document root. This is the convention
// every inspection algorithm in this module uses.
type Ancestry []Node

// AssertGetAncestry walks coll.IterAncestors(id) and resolves each id
// to a Node. It panics (an invariant violation, per ) if any
// id along the walk cannot be resolved — that would mean parentByID
// pointed at a dangling id.
func AssertGetAncestry(coll *nodemap.Collection, id int) Ancestry {
	ids := coll.IterAncestors(id)
	ancestry := make(Ancestry, 0, len(ids))
	for _, nid := range ids {
		n, ok := FromID(coll, nid)
		if !ok {
			panic(fmt.Sprintf("xnode: invariant violation: id %d in ancestry chain has no backing node", nid))
		}
		ancestry = append(ancestry, n)
	}
	return ancestry
}

// KindFilter, when non-nil, restricts navigation results to nodes whose
// Kind is in the set. A non-matching reached node yields "absent", not
// an error — this is what lets autocomplete rules stay short
// declarative patterns.
type KindFilter map[ast.Kind]bool

func Kinds(kinds ...ast.Kind) KindFilter {
	f := make(KindFilter, len(kinds))
	for _, k := range kinds {
		f[k] = true
	}
	return f
}

// MaybeNthPrevious returns the node n steps towards the leaf from
// ancestry[i] (i.e. ancestry[i-n]), or (Node{}, false) if that index is
// out of range or optKinds is supplied and the node's kind doesn't match.
func MaybeNthPrevious(ancestry Ancestry, i, n int, optKinds KindFilter) (Node, bool) {
	j := i - n
	if j < 0 || j >= len(ancestry) {
		return Node{}, false
	}
	node := ancestry[j]
	if optKinds != nil && !optKinds[node.Kind()] {
		return Node{}, false
	}
	return node, true
}

// MaybeNthNext returns the node n steps towards the root from
// ancestry[i] (i.e. ancestry[i+n]), or (Node{}, false) if out of range
// or kind-filtered out.
func MaybeNthNext(ancestry Ancestry, i, n int, optKinds KindFilter) (Node, bool) {
	j := i + n
	if j < 0 || j >= len(ancestry) {
		return Node{}, false
	}
	node := ancestry[j]
	if optKinds != nil && !optKinds[node.Kind()] {
		return Node{}, false
	}
	return node, true
}

// AssertGetNthPrevious is MaybeNthPrevious but panics (invariant
// violation) when the offset is absent — for call sites that have
// already established the offset must exist.
func AssertGetNthPrevious(ancestry Ancestry, i, n int, optKinds KindFilter) Node {
	node, ok := MaybeNthPrevious(ancestry, i, n, optKinds)
	if !ok {
		panic(fmt.Sprintf("xnode: invariant violation: expected ancestor at offset %d from index %d", -n, i))
	}
	return node
}

// AssertGetNthNext is MaybeNthNext but panics when absent.
func AssertGetNthNext(ancestry Ancestry, i, n int, optKinds KindFilter) Node {
	node, ok := MaybeNthNext(ancestry, i, n, optKinds)
	if !ok {
		panic(fmt.Sprintf("xnode: invariant violation: expected ancestor at offset %d from index %d", n, i))
	}
	return node
}

// ChildrenXor returns id's children as XorNodes, in syntactic order,
// looking each one up in whichever map of coll currently holds it.
// Attribute slots a production has not reached yet simply have no
// corresponding child id — consumers must treat a short child list as
// "some trailing slots are unparsed", not as an error.
func ChildrenXor(coll *nodemap.Collection, id int) []Node {
	childIDs := coll.GetChildIds(id)
	children := make([]Node, 0, len(childIDs))
	for _, cid := range childIDs {
		if n, ok := FromID(coll, cid); ok {
			children = append(children, n)
		}
	}
	return children
}

// AttributeIndex reports which position id occupies among its parent's
// children (its "attribute index"), or (0, false) if id is the root.
func AttributeIndex(coll *nodemap.Collection, id int) (int, bool) {
	parent, ok := coll.GetParent(id)
	if !ok {
		return 0, false
	}
	for i, cid := range coll.GetChildIds(parent) {
		if cid == id {
			return i, true
		}
	}
	return 0, false
}
