// Package nodemap implements the dual-mode node-id graph (C2) and
// the parse-context lifecycle manager built over it (C3): every
// node, whether a finished ast.Node or a still-open ContextNode, lives
// under one monotonically-increasing integer id space, so downstream
// inspection code never has to know which kind of storage backs a node
// it is looking at.
package nodemap

import "github.com/dhamidi/mq/ast"

// NoID is the sentinel used where "maybe"-prefixed fields are
// absent: no parent, no current context, no id yet.
const NoID = 0

// ContextNode represents an in-progress production: a grammar rule that
// has started consuming tokens but has not yet produced (or failed to
// produce) its ast.Node payload.
type ContextNode struct {
	ID               int
	Kind             ast.Kind
	TokenIndexStart  int
	AttributeCounter int
	ParentID         int // NoID if this is the root context
}

// Collection is the value-type bundle calls the "Node-Id Map
// Collection": every node under one id space, plus the indices needed to
// answer parent/child/ancestor queries in O(1)/O(depth).
type Collection struct {
	astByID      map[int]*ast.Node
	contextByID  map[int]*ContextNode
	parentByID   map[int]int
	childrenByID map[int][]int
	leafIDs      map[int]bool

	maybeRightmostLeaf int // NoID if unset
}

// New returns an empty Collection.
func New() *Collection {
	return &Collection{
		astByID:            make(map[int]*ast.Node),
		contextByID:        make(map[int]*ContextNode),
		parentByID:         make(map[int]int),
		childrenByID:       make(map[int][]int),
		leafIDs:            make(map[int]bool),
		maybeRightmostLeaf: NoID,
	}
}

// GetAst returns the finished AST node for id, if any.
func (c *Collection) GetAst(id int) (*ast.Node, bool) {
	n, ok := c.astByID[id]
	return n, ok
}

// GetContext returns the open context node for id, if any.
func (c *Collection) GetContext(id int) (*ContextNode, bool) {
	n, ok := c.contextByID[id]
	return n, ok
}

// GetParent returns the parent id of id, if id has one (id is not the root).
func (c *Collection) GetParent(id int) (int, bool) {
	p, ok := c.parentByID[id]
	return p, ok
}

// GetChildIds returns id's children in syntactic (insertion) order. The
// returned slice must not be mutated by callers.
func (c *Collection) GetChildIds(id int) []int {
	return c.childrenByID[id]
}

// IterAncestors walks parentByID from id up to (and including) the root,
// returning ids leaf-first: [id, parent(id), grandparent(id), ..., root].
func (c *Collection) IterAncestors(id int) []int {
	ids := []int{id}
	cur := id
	for {
		p, ok := c.parentByID[cur]
		if !ok {
			break
		}
		ids = append(ids, p)
		cur = p
	}
	return ids
}

// IsLeaf reports whether id is a recorded terminal AST node.
func (c *Collection) IsLeaf(id int) bool { return c.leafIDs[id] }

// LeafIDs returns every id currently recorded as a terminal AST node.
// The returned set must not be mutated by callers.
func (c *Collection) LeafIDs() map[int]bool { return c.leafIDs }

// MaybeRightmostLeaf returns the most recently promoted terminal node's
// id, or NoID if none has been promoted yet. Active-node resolution
// (C6) uses it as a fast starting point when the caret sits at EOF.
func (c *Collection) MaybeRightmostLeaf() int { return c.maybeRightmostLeaf }

// appendChild records child as the next ordered child of parent. It is
// invariant-preserving only when called exactly once per (parent, child)
// pair, in syntactic order — which is how startContext/endContext use it.
func (c *Collection) appendChild(parent, child int) {
	c.childrenByID[parent] = append(c.childrenByID[parent], child)
	c.parentByID[child] = parent
}

// replaceAncestorsChildReference swaps oldChildID for newChildID in
// parentID's child list, preserving its position — used when a context
// is promoted to an AST node and must occupy the same slot.
func (c *Collection) replaceAncestorsChildReference(parentID, oldChildID, newChildID int) {
	siblings := c.childrenByID[parentID]
	for i, id := range siblings {
		if id == oldChildID {
			siblings[i] = newChildID
			break
		}
	}
	c.parentByID[newChildID] = parentID
}

// removeChildReference detaches child from parent's child list without
// touching parentByID — used by deleteContext/deleteAst once the child's
// own bookkeeping has already been handled.
func (c *Collection) removeChildReference(parentID, childID int) {
	siblings := c.childrenByID[parentID]
	for i, id := range siblings {
		if id == childID {
			c.childrenByID[parentID] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
}
