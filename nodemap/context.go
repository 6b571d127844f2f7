package nodemap

import (
	"fmt"

	"github.com/dhamidi/mq/ast"
)

// State is "Parse-Context State": the id allocator plus the
// Collection it allocates into, plus a pointer to whichever context is
// currently being built.
type State struct {
	Root                  int
	idCounter             int
	Collection            *Collection
	MaybeCurrentContextID int // NoID at document root
}

// NewState creates a State with a freshly-allocated root context of kind
// rootKind already open and current.
func NewState(rootKind ast.Kind) *State {
	s := &State{
		Collection:            New(),
		MaybeCurrentContextID: NoID,
	}
	root := s.StartContext(rootKind)
	s.Root = root.ID
	return s
}

func (s *State) nextID() int {
	s.idCounter++
	return s.idCounter
}

// IDCounter returns the allocator's current value, the "idCounter" half
// of a FastStateBackup.
func (s *State) IDCounter() int { return s.idCounter }

// StartContext allocates the next id, opens a ContextNode of kind under
// the current context (or with no parent, for the very first call), and
// makes it current.
func (s *State) StartContext(kind ast.Kind) *ContextNode {
	id := s.nextID()
	parent := s.MaybeCurrentContextID

	ctx := &ContextNode{
		ID:       id,
		Kind:     kind,
		ParentID: parent,
	}
	s.Collection.contextByID[id] = ctx

	if parent != NoID {
		s.Collection.appendChild(parent, id)
		if parentCtx, ok := s.Collection.contextByID[parent]; ok {
			parentCtx.AttributeCounter++
		}
	}

	s.MaybeCurrentContextID = id
	return ctx
}

// AdoptHead reparents headID, a node that was already fully parsed before
// newCtx was opened, so it becomes newCtx's first child instead of a
// sibling of newCtx under newCtx's own parent. Postfix productions
// (invoke, item access, field selector, field projection) read their head
// expression to completion, then call StartContext for their own wrapper
// — at that point StartContext links the wrapper under whatever context
// was current when the head was read, not under headID, leaving headID
// stranded as the wrapper's sibling in the real parent/child graph even
// though the wrapper's ast.Node.Children slice lists headID first.
// Ancestry, child, and attribute-index lookups all read parentByID and
// childrenByID directly, so without this call the wrapper never appears
// in the head's ancestry chain.
func (s *State) AdoptHead(newCtx *ContextNode, headID int) {
	if oldParent, ok := s.Collection.parentByID[headID]; ok {
		s.Collection.removeChildReference(oldParent, headID)
		if oldCtx, ok := s.Collection.contextByID[oldParent]; ok {
			oldCtx.AttributeCounter--
		}
	}
	s.Collection.childrenByID[newCtx.ID] = append([]int{headID}, s.Collection.childrenByID[newCtx.ID]...)
	s.Collection.parentByID[headID] = newCtx.ID
	newCtx.AttributeCounter++
}

// EndContext promotes the current context to an AST node, asserting
// astPayload.Kind matches it, then returns the new current context (the
// promoted node's parent).
func (s *State) EndContext(astPayload *ast.Node) (int, error) {
	id := s.MaybeCurrentContextID
	if id == NoID {
		return NoID, fmt.Errorf("nodemap: endContext called with no open context")
	}
	ctx, ok := s.Collection.contextByID[id]
	if !ok {
		return NoID, fmt.Errorf("nodemap: endContext: context %d not found", id)
	}
	if ctx.Kind != astPayload.Kind {
		return NoID, fmt.Errorf("nodemap: endContext: kind mismatch, context is %s but payload is %s", ctx.Kind, astPayload.Kind)
	}

	astPayload.ID = id
	delete(s.Collection.contextByID, id)
	s.Collection.astByID[id] = astPayload
	// The promoted node keeps the context's id (invariant 4), so its
	// parent's child-list entry already points at the right id; this
	// call exists for API parity with C2 contract and to
	// reassert the link rather than to change it.
	if ctx.ParentID != NoID {
		s.Collection.replaceAncestorsChildReference(ctx.ParentID, id, id)
	}

	if ast.IsTerminal(astPayload.Kind) {
		s.Collection.leafIDs[id] = true
		s.Collection.maybeRightmostLeaf = id
	}

	s.MaybeCurrentContextID = ctx.ParentID
	return ctx.ParentID, nil
}

// DeleteContext rolls back context id: if it is the current context, the
// current pointer moves to its parent; the node is removed from
// contextByID, and its children are reparented to its own parent in
// order, unless parentWillAlsoBeDeleted is set, in which case children
// are dropped silently because the caller is about to delete the
// parent too.
func (s *State) DeleteContext(id int, parentWillAlsoBeDeleted bool) (int, error) {
	ctx, ok := s.Collection.contextByID[id]
	if !ok {
		return NoID, fmt.Errorf("nodemap: deleteContext: context %d not found", id)
	}

	children := append([]int(nil), s.Collection.childrenByID[id]...)
	if !parentWillAlsoBeDeleted {
		for _, child := range children {
			s.reparent(child, ctx.ParentID)
		}
	}
	delete(s.Collection.childrenByID, id)

	if ctx.ParentID != NoID {
		s.Collection.removeChildReference(ctx.ParentID, id)
		if parentCtx, ok := s.Collection.contextByID[ctx.ParentID]; ok {
			parentCtx.AttributeCounter--
		}
	}
	delete(s.Collection.parentByID, id)
	delete(s.Collection.contextByID, id)

	newCurrent := ctx.ParentID
	if s.MaybeCurrentContextID == id {
		s.MaybeCurrentContextID = newCurrent
	}
	return newCurrent, nil
}

// deleteAst removes a promoted AST node id, following the same
// reparenting policy as DeleteContext. Used only by rollback.
func (s *State) deleteAst(id int, parentWillAlsoBeDeleted bool) {
	parent, hasParent := s.Collection.parentByID[id]
	children := append([]int(nil), s.Collection.childrenByID[id]...)

	if !parentWillAlsoBeDeleted {
		for _, child := range children {
			s.reparent(child, parent)
		}
	}
	delete(s.Collection.childrenByID, id)

	if hasParent {
		s.Collection.removeChildReference(parent, id)
	}
	delete(s.Collection.parentByID, id)
	delete(s.Collection.astByID, id)
	delete(s.Collection.leafIDs, id)
}

// reparent moves child from its current parent to newParent, preserving
// its position at the end of newParent's child list (newParent is
// NoID only when child was the root, which rollback never removes).
func (s *State) reparent(child, newParent int) {
	s.Collection.parentByID[child] = newParent
	if newParent != NoID {
		s.Collection.childrenByID[newParent] = append(s.Collection.childrenByID[newParent], child)
	}
}

// FastStateBackup is the O(1) snapshot describes, captured
// immediately before a tentative/speculative parse.
type FastStateBackup struct {
	TokenIndex            int
	IDCounter             int
	MaybeCurrentContextID int
}

// Backup captures a FastStateBackup at the given token index.
func (s *State) Backup(tokenIndex int) FastStateBackup {
	return FastStateBackup{
		TokenIndex:            tokenIndex,
		IDCounter:             s.idCounter,
		MaybeCurrentContextID: s.MaybeCurrentContextID,
	}
}

// Apply rolls the Collection back to the state it had at Backup time: it
// deletes every id strictly greater than backup.IDCounter, AST ids first
// (descending), then context ids (descending), then restores the current
// context pointer. It returns the tokenIndex the caller should rewind
// the token cursor to. Correctness rests on strict id monotonicity
// (invariant 3): nothing created during the failed branch can be
// referenced from outside it, so a pure threshold delete is safe and
// proportional only to the work of that branch.
func (s *State) Apply(backup FastStateBackup) int {
	var astIDs, contextIDs []int
	for id := range s.Collection.astByID {
		if id > backup.IDCounter {
			astIDs = append(astIDs, id)
		}
	}
	for id := range s.Collection.contextByID {
		if id > backup.IDCounter {
			contextIDs = append(contextIDs, id)
		}
	}
	sortDescending(astIDs)
	sortDescending(contextIDs)

	for _, id := range astIDs {
		parentID, hasParent := s.Collection.parentByID[id]
		parentWillBeDeleted := hasParent && parentID > backup.IDCounter
		s.deleteAst(id, parentWillBeDeleted)
	}
	for _, id := range contextIDs {
		ctx := s.Collection.contextByID[id]
		parentWillBeDeleted := ctx != nil && ctx.ParentID > backup.IDCounter
		s.DeleteContext(id, parentWillBeDeleted)
	}

	s.idCounter = backup.IDCounter
	s.MaybeCurrentContextID = backup.MaybeCurrentContextID
	return backup.TokenIndex
}

func sortDescending(ids []int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] < ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
