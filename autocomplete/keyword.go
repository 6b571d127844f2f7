// Package autocomplete implements the Autocomplete Engine (C7): keyword
// and primitive-type suggestions derived from the Active Node's
// ancestry and the trailing token, grounded on the same
// ancestry-pairwise-dispatch shape java/codebase/lsp.go's completion
// handler walks, adapted from Java member/type completion to M
// keyword/type completion.
package autocomplete

import (
	"strings"

	"github.com/dhamidi/mq/activenode"
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/nodemap"
	"github.com/dhamidi/mq/token"
	"github.com/dhamidi/mq/xnode"
)

// conjunctionKeywords is the binary-operator keyword set commonly called
// "conjunction keywords": the ones that can continue a completed
// expression rather than start a new one.
var conjunctionKeywords = []token.Kind{token.KwAnd, token.KwAs, token.KwIs, token.KwMeta, token.KwOr}

// startOfDocumentKeywords is offered when the caret sits at the very
// start of an otherwise-empty expression document.
var startOfDocumentKeywords = []token.Kind{token.KwLet, token.KwIf, token.KwTry, token.KwError, token.KwEach}

// Keywords runs the keyword-autocomplete pipeline and returns the
// closed-set, prefix-filtered suggestion list.
func Keywords(coll *nodemap.Collection, an *activenode.ActiveNode, maybeTrailing *token.Token) []token.Kind {
	prefix := positionName(an, maybeTrailing)

	if kws, ok := keywordEdgeCases(coll, an); ok {
		return filterKeywordsByPrefix(kws, prefix)
	}

	suggestions := walkAncestryForKeywords(coll, an.Ancestry)

	if hasOpenAncestor(an.Ancestry) && an.LeafKind != activenode.OnAstNode && isUnaryTypeLeaf(coll, an) {
		suggestions = dedupKeywords(append(suggestions, conjunctionKeywords...))
	}

	return filterKeywordsByPrefix(suggestions, prefix)
}

// keywordEdgeCases checks the highest-priority, structurally-narrow
// cases step 2 lists before the general ancestry walk.
func keywordEdgeCases(coll *nodemap.Collection, an *activenode.ActiveNode) ([]token.Kind, bool) {
	ancestry := an.Ancestry
	if len(ancestry) == 0 {
		return startOfDocumentKeywords, true
	}

	leaf := ancestry[0]

	// An entirely empty document: nothing has been parsed, so no leaf
	// exists, and the Active Node is the innermost still-open context
	// under the Document root.
	if leaf.IsContext() && ancestry[len(ancestry)-1].Kind() == ast.KindDocument && len(coll.LeafIDs()) == 0 {
		return startOfDocumentKeywords, true
	}

	// Lone identifier directly under an IdentifierExpression that is
	// itself the Document's only content: "l|" in an empty document.
	// Requiring exactly 3 ancestry entries (identifier, IdentifierExpression,
	// Document) is what pins this to the document's sole top-level
	// content — Document is always the last ancestry entry regardless of
	// nesting depth, so checking only that would also match any bare
	// identifier buried arbitrarily deep in the tree.
	if leaf.Kind() == ast.KindIdentifier && len(ancestry) == 3 {
		if ancestry[1].Kind() == ast.KindIdentifierExpression && ancestry[2].Kind() == ast.KindDocument {
			return startOfDocumentKeywords, true
		}
	}

	// "(_ |) => _": caret right after a parameter name with no "as"
	// clause yet.
	if leaf.Kind() == ast.KindIdentifier && len(ancestry) >= 2 && ancestry[1].Kind() == ast.KindParameter {
		if !parameterHasAsClause(coll, ancestry[1]) {
			return []token.Kind{token.KwAs}, true
		}
	}

	// "(foo a|) => …": the open Parameter context itself is the leaf
	// (trailing identifier text still being typed, no "as" clause yet).
	if leaf.IsContext() && leaf.Kind() == ast.KindParameter {
		if !parameterHasAsClause(coll, leaf) {
			return []token.Kind{token.KwAs}, true
		}
	}

	return nil, false
}

func parameterHasAsClause(coll *nodemap.Collection, param xnode.Node) bool {
	for _, child := range xnode.ChildrenXor(coll, param.ID()) {
		if child.Kind() == ast.KindAsNullablePrimitiveType {
			return true
		}
	}
	return false
}

// walkAncestryForKeywords is step 3: walk ancestry
// pairwise (parent, child) from index 1 upward, dispatching on the
// parent's kind; the first routine to return a non-nil set halts the
// walk.
func walkAncestryForKeywords(coll *nodemap.Collection, ancestry xnode.Ancestry) []token.Kind {
	for i := 1; i < len(ancestry); i++ {
		parent := ancestry[i]
		child := ancestry[i-1]
		if kws := dispatchByParentKind(coll, parent, child); kws != nil {
			return kws
		}
	}
	return nil
}

func dispatchByParentKind(coll *nodemap.Collection, parent, child xnode.Node) []token.Kind {
	switch parent.Kind() {
	case ast.KindErrorHandlingExpression:
		return errorHandlingExpressionKeywords(coll, parent, child)
	case ast.KindLetExpression:
		return letExpressionKeywords(coll, parent, child)
	case ast.KindSectionMember:
		return sectionMemberKeywords(coll, parent, child)
	case ast.KindIdentifierPairedExpression, ast.KindListExpression:
		return nil // no keyword continuation from these positions
	default:
		return nil
	}
}

// errorHandlingExpressionKeywords suggests "otherwise" right after the
// protected expression, before a handler has been attached.
func errorHandlingExpressionKeywords(coll *nodemap.Collection, parent, child xnode.Node) []token.Kind {
	idx, ok := xnode.AttributeIndex(coll, child.ID())
	if !ok || idx != 1 {
		return nil
	}
	if len(xnode.ChildrenXor(coll, parent.ID())) > 2 {
		return nil // otherwise clause already present
	}
	return []token.Kind{token.KwOtherwise}
}

// letExpressionKeywords suggests "in" while the LetExpression is an open
// context that has not read its "in" keyword yet.
func letExpressionKeywords(coll *nodemap.Collection, parent, child xnode.Node) []token.Kind {
	if !parent.IsContext() {
		return nil
	}
	for _, c := range xnode.ChildrenXor(coll, parent.ID()) {
		if c.Tag == xnode.TagAst && c.Kind() == ast.KindConstant && c.AstNode.Token != nil && c.AstNode.Token.Kind == token.KwIn {
			return nil
		}
	}
	return []token.Kind{token.KwIn}
}

// sectionMemberKeywords suggests "shared" while the open SectionMember
// context has consumed at most one attribute (the child the walk came
// through).
func sectionMemberKeywords(coll *nodemap.Collection, parent, child xnode.Node) []token.Kind {
	if !parent.IsContext() || parent.Context.AttributeCounter > 1 {
		return nil
	}
	return []token.Kind{token.KwShared}
}

// isUnaryTypeLeaf reports whether the active leaf is a completed
// primary/unary expression — the shape step 4 requires
// before offering conjunction keywords.
func isUnaryTypeLeaf(coll *nodemap.Collection, an *activenode.ActiveNode) bool {
	if len(an.Ancestry) == 0 {
		return false
	}
	switch an.Ancestry[0].Kind() {
	case ast.KindIdentifier, ast.KindLiteralExpression, ast.KindIdentifierExpression, ast.KindConstant:
		return true
	default:
		return false
	}
}

// hasOpenAncestor reports whether any node in ancestry is still an open
// context — the signal this module uses to distinguish "the document
// finished parsing successfully" (no conjunctions: S1) from
// "the document is mid-parse or errored here" (conjunctions possible:
// S2), since a fully-closed ancestry chain means the grammar
// position genuinely has nothing left to continue. Keywords offers
// conjunctions only when, in addition, the active leaf is a completed
// unary-type node (isUnaryTypeLeaf); when the active node is the open
// context itself, as for "let x = 1 a" with the caret at the end, no
// conjunctions are offered.
func hasOpenAncestor(ancestry xnode.Ancestry) bool {
	for _, n := range ancestry {
		if n.IsContext() {
			return true
		}
	}
	return false
}

func dedupKeywords(kws []token.Kind) []token.Kind {
	seen := make(map[token.Kind]bool, len(kws))
	out := make([]token.Kind, 0, len(kws))
	for _, k := range kws {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// positionName is step 1: the identifier text at the
// caret, or a keyword-like literal ("null"/"true"/"false") if the caret
// sits on one.
func positionName(an *activenode.ActiveNode, maybeTrailing *token.Token) string {
	if an.MaybeIdentifierUnderPosition != nil {
		return an.MaybeIdentifierUnderPosition.Literal
	}
	if len(an.Ancestry) > 0 {
		leaf := an.Ancestry[0]
		if leaf.Tag == xnode.TagAst && leaf.AstNode.Token != nil && token.IsKeywordLikeLiteral(leaf.AstNode.Token.Literal) {
			return leaf.AstNode.Token.Literal
		}
	}
	if maybeTrailing != nil {
		return maybeTrailing.Literal
	}
	return ""
}

func filterKeywordsByPrefix(kws []token.Kind, prefix string) []token.Kind {
	if prefix == "" {
		return kws
	}
	out := make([]token.Kind, 0, len(kws))
	for _, k := range kws {
		if strings.HasPrefix(k.String(), prefix) {
			out = append(out, k)
		}
	}
	return out
}
