package parser

import (
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/perror"
	"github.com/dhamidi/mq/token"
)

// readDocument is the grammar's root production: a document is either a
// section document (starts with the "section" keyword) or a plain
// expression document.
func readDocument(state *State) (int, error) {
	if err := state.checkCancellation(); err != nil {
		return 0, err
	}
	startTok := state.peek()
	if state.check(token.KwSection) {
		sectionID, err := state.Settings.Readers.Section(state)
		if err != nil {
			return 0, err
		}
		return state.endContext(ast.KindDocument, []int{sectionID}, startTok)
	}

	exprID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindDocument, []int{exprID}, startTok)
}

// readSection parses "section [name];" followed by zero or more
// SectionMembers. Keyword autocomplete dispatches on SectionMember, so
// Section has to exist to contain it.
func readSection(state *State) (int, error) {
	if err := state.checkCancellation(); err != nil {
		return 0, err
	}
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindSection)

	if _, err := state.consumeConstant(token.KwSection); err != nil {
		return 0, err
	}

	var children []int
	if state.check(token.Identifier) || state.check(token.QuotedIdentifier) {
		nameID, err := readIdentifier(state)
		if err != nil {
			return 0, err
		}
		children = append(children, nameID)
	}
	if _, err := state.expect(token.Semicolon); err != nil {
		return 0, err
	}

	for state.check(token.KwShared) || isSectionMemberStart(state) {
		memberID, err := state.Settings.Readers.SectionMember(state)
		if err != nil {
			return 0, err
		}
		children = append(children, memberID)
	}

	return state.endContext(ast.KindSection, children, startTok)
}

func isSectionMemberStart(state *State) bool {
	return state.check(token.Identifier) || state.check(token.QuotedIdentifier)
}

// readSectionMember parses "[shared] name = expression;".
func readSectionMember(state *State) (int, error) {
	if err := state.checkCancellation(); err != nil {
		return 0, err
	}
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindSectionMember)

	var children []int
	if state.check(token.KwShared) {
		id, err := state.consumeConstant(token.KwShared)
		if err != nil {
			return 0, err
		}
		children = append(children, id)
	}

	pairID, err := readIdentifierPairedExpression(state)
	if err != nil {
		return 0, err
	}
	children = append(children, pairID)

	if _, err := state.expect(token.Semicolon); err != nil {
		return 0, err
	}

	return state.endContext(ast.KindSectionMember, children, startTok)
}

// readIdentifierPairedExpression parses "identifier = expression", the
// building block for let-bindings and section members.
func readIdentifierPairedExpression(state *State) (int, error) {
	if err := state.checkCancellation(); err != nil {
		return 0, err
	}
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindIdentifierPairedExpression)

	idID, err := readIdentifier(state)
	if err != nil {
		return 0, err
	}
	eqID, err := state.consumeConstant(token.Equal)
	if err != nil {
		return 0, err
	}
	exprID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindIdentifierPairedExpression, []int{idID, eqID, exprID}, startTok)
}

// readGeneralizedIdentifierPairedExpression parses
// "generalizedIdentifier = expression", used by RecordExpression fields.
func readGeneralizedIdentifierPairedExpression(state *State) (int, error) {
	if err := state.checkCancellation(); err != nil {
		return 0, err
	}
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindGeneralizedIdentifierPairedExpression)

	idID, err := readGeneralizedIdentifier(state)
	if err != nil {
		return 0, err
	}
	eqID, err := state.consumeConstant(token.Equal)
	if err != nil {
		return 0, err
	}
	exprID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindGeneralizedIdentifierPairedExpression, []int{idID, eqID, exprID}, startTok)
}

// readIdentifier parses a plain or quoted identifier as a KindIdentifier
// leaf.
func readIdentifier(state *State) (int, error) {
	tok, err := state.expectAny(token.Identifier, token.QuotedIdentifier)
	if err != nil {
		return 0, err
	}
	return state.leaf(ast.KindIdentifier, tok)
}

// readGeneralizedIdentifier accepts the wider set of M tokens legal in
// field/member-name position: plain identifiers, quoted identifiers,
// and bare keywords used as names (M's field names are not reserved
// against its keyword set).
func readGeneralizedIdentifier(state *State) (int, error) {
	tok := state.peek()
	switch tok.Kind {
	case token.Identifier, token.QuotedIdentifier:
		state.advance()
		return state.leaf(ast.KindGeneralizedIdentifier, tok)
	default:
		if _, isKw := token.LookupKeyword(tok.Literal); isKw && tok.Literal != "" {
			state.advance()
			return state.leaf(ast.KindGeneralizedIdentifier, tok)
		}
	}
	return 0, &perror.ExpectedAnyTokenKindError{Expected: []token.Kind{token.Identifier, token.QuotedIdentifier}, Got: tok}
}
