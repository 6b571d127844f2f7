package parser

import (
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/perror"
	"github.com/dhamidi/mq/token"
)

// readPrimaryExpression reads a primary expression and then chains any
// number of postfix invoke/item-access/field-selector/field-projection
// operators onto it, left-associatively.
func readPrimaryExpression(state *State) (int, error) {
	if err := state.checkCancellation(); err != nil {
		return 0, err
	}

	id, err := readPrimaryExpressionHead(state)
	if err != nil {
		return 0, err
	}
	return readPostfixChain(state, id)
}

func readPrimaryExpressionHead(state *State) (int, error) {
	switch state.peek().Kind {
	case token.LBracket:
		return readRecordExpression(state)
	case token.LBrace:
		return readListExpression(state)
	case token.LParen:
		return readParenOrFunctionExpression(state)
	case token.At:
		return readIdentifierExpression(state)
	case token.Identifier, token.QuotedIdentifier:
		return readIdentifierExpression(state)
	case token.NumericLiteral, token.TextLiteral, token.KwTrue, token.KwFalse, token.KwNull:
		return readLiteralExpression(state)
	case token.Ellipsis:
		return readNotImplementedExpression(state)
	case token.KwEach:
		return readEachExpression(state)
	default:
		return 0, &perror.ExpectedAnyTokenKindError{
			Expected: []token.Kind{token.Identifier, token.LParen, token.LBracket, token.LBrace},
			Got:      state.peek(),
		}
	}
}

// readParenOrFunctionExpression resolves the grammar's one genuinely
// ambiguous prefix: "(x) => ..." is a FunctionExpression, "(x)" alone or
// "(x) + 1" is a ParenthesizedExpression. It speculatively tries the
// function reading first and rolls back via
// fastStateBackup/applyFastStateBackup when that fails.
func readParenOrFunctionExpression(state *State) (int, error) {
	backup := state.backup()
	if id, err := readFunctionExpression(state); err == nil {
		return id, nil
	}
	state.rollback(backup)
	return readParenthesizedExpression(state)
}

func readParenthesizedExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindParenthesizedExpression)

	openID, err := state.consumeConstant(token.LParen)
	if err != nil {
		return 0, err
	}
	exprID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RParen)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindParenthesizedExpression, []int{openID, exprID, closeID}, startTok)
}

// readFunctionExpression parses "(param,* ) [as type] => body".
func readFunctionExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindFunctionExpression)

	paramsID, err := readParameterList(state)
	if err != nil {
		return 0, err
	}
	children := []int{paramsID}

	if state.check(token.KwAs) {
		asID, err := readAsNullablePrimitiveType(state)
		if err != nil {
			return 0, err
		}
		children = append(children, asID)
	}

	arrowID, err := state.consumeConstant(token.FatArrow)
	if err != nil {
		return 0, err
	}
	bodyID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	children = append(children, arrowID, bodyID)

	return state.endContext(ast.KindFunctionExpression, children, startTok)
}

func readParameterList(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindParameterList)

	openID, err := state.consumeConstant(token.LParen)
	if err != nil {
		return 0, err
	}

	sawOptional := false
	params, err := readCsv(state, token.RParen, func(state *State) (int, error) {
		return readParameter(state, &sawOptional)
	})
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RParen)
	if err != nil {
		return 0, err
	}

	children := append([]int{openID}, params...)
	children = append(children, closeID)
	return state.endContext(ast.KindParameterList, children, startTok)
}

// readParameter parses "[optional] name [as [nullable] type]". The
// contextual "optional" keyword is a plain identifier spelling, not a
// reserved word, so it's recognized by literal text rather than a
// dedicated token.Kind. sawOptional is shared across every parameter in
// the enclosing list so a later required parameter can be rejected
// against an earlier optional one (RequiredParameterAfterOptionalParameterError).
func readParameter(state *State, sawOptional *bool) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindParameter)

	isOptional := state.isContextualKeyword("optional") && state.peekN(1).Kind == token.Identifier
	var children []int
	if isOptional {
		tok := state.advance()
		optionalID, _ := state.leaf(ast.KindConstant, tok)
		children = append(children, optionalID)
		*sawOptional = true
	} else if *sawOptional {
		return 0, &perror.RequiredParameterAfterOptionalParameterError{Parameter: startTok}
	}

	nameID, err := readIdentifier(state)
	if err != nil {
		return 0, err
	}
	children = append(children, nameID)

	if state.check(token.KwAs) {
		asID, err := readAsNullablePrimitiveType(state)
		if err != nil {
			return 0, err
		}
		children = append(children, asID)
	}

	return state.endContext(ast.KindParameter, children, startTok)
}

// readAsNullablePrimitiveType parses "as [nullable] primitiveType", the
// wrapper primitive-type ancestry dispatch ("Parameter preceded by As
// keyword") walks through.
func readAsNullablePrimitiveType(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindAsNullablePrimitiveType)

	asID, err := state.consumeConstant(token.KwAs)
	if err != nil {
		return 0, err
	}
	typeID, err := readNullablePrimitiveType(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindAsNullablePrimitiveType, []int{asID, typeID}, startTok)
}

// readRecordExpression parses "[field = expr, ...]".
func readRecordExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindRecordExpression)

	openID, err := state.consumeConstant(token.LBracket)
	if err != nil {
		return 0, err
	}
	fields, err := readCsv(state, token.RBracket, readGeneralizedIdentifierPairedExpression)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RBracket)
	if err != nil {
		return 0, err
	}

	children := append([]int{openID}, fields...)
	children = append(children, closeID)
	return state.endContext(ast.KindRecordExpression, children, startTok)
}

// readListExpression parses "{item, item..item, ...}".
func readListExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindListExpression)

	openID, err := state.consumeConstant(token.LBrace)
	if err != nil {
		return 0, err
	}
	items, err := readCsv(state, token.RBrace, readListItem)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RBrace)
	if err != nil {
		return 0, err
	}

	children := append([]int{openID}, items...)
	children = append(children, closeID)
	return state.endContext(ast.KindListExpression, children, startTok)
}

// readListItem reads a single list element, which may be a range
// "lower..upper" or a plain expression.
func readListItem(state *State) (int, error) {
	backup := state.backup()
	if id, err := readRangeExpression(state); err == nil {
		return id, nil
	}
	state.rollback(backup)
	return state.Settings.Readers.Expression(state)
}

func readRangeExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindRangeExpression)

	lowID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	dotsID, err := state.consumeConstant(token.Ellipsis)
	if err != nil {
		return 0, err
	}
	highID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindRangeExpression, []int{lowID, dotsID, highID}, startTok)
}

func readNotImplementedExpression(state *State) (int, error) {
	tok, err := state.expect(token.Ellipsis)
	if err != nil {
		return 0, err
	}
	state.Nodes.StartContext(ast.KindNotImplementedExpression)
	constID, _ := state.leaf(ast.KindConstant, tok)
	return state.endContext(ast.KindNotImplementedExpression, []int{constID}, tok)
}

func readLiteralExpression(state *State) (int, error) {
	tok, err := state.expectAny(token.NumericLiteral, token.TextLiteral, token.KwTrue, token.KwFalse, token.KwNull)
	if err != nil {
		return 0, err
	}
	return state.leaf(ast.KindLiteralExpression, tok)
}

// readIdentifierExpression parses "[@]identifier", wrapping it in an
// IdentifierExpression so the inline-reference operator has a home
// distinct from the bare Identifier leaf.
func readIdentifierExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindIdentifierExpression)

	var children []int
	if state.check(token.At) {
		atID, err := state.consumeConstant(token.At)
		if err != nil {
			return 0, err
		}
		children = append(children, atID)
	}
	idID, err := readIdentifier(state)
	if err != nil {
		return 0, err
	}
	children = append(children, idID)

	return state.endContext(ast.KindIdentifierExpression, children, startTok)
}

// readPostfixChain repeatedly applies invoke "(...)", item-access
// "{...}", and field-selector/projection "[...]" / "[[...]]" suffixes
// to headID, left-associatively. Each suffix wraps the accumulated
// expression as its first child.
func readPostfixChain(state *State, headID int) (int, error) {
	for {
		switch state.peek().Kind {
		case token.LParen:
			id, err := readInvokeExpression(state, headID)
			if err != nil {
				return 0, err
			}
			headID = id
		case token.LBrace:
			id, err := readItemAccessExpression(state, headID)
			if err != nil {
				return 0, err
			}
			headID = id
		case token.LBracket:
			if state.peekN(1).Kind == token.LBracket {
				id, err := readFieldProjection(state, headID)
				if err != nil {
					return 0, err
				}
				headID = id
			} else {
				id, err := readFieldSelector(state, headID)
				if err != nil {
					return 0, err
				}
				headID = id
			}
		default:
			return headID, nil
		}
	}
}

func readInvokeExpression(state *State, headID int) (int, error) {
	startTok := state.peek()
	ctx := state.Nodes.StartContext(ast.KindInvokeExpression)
	state.Nodes.AdoptHead(ctx, headID)

	openID, err := state.consumeConstant(token.LParen)
	if err != nil {
		return 0, err
	}
	args, err := readCsv(state, token.RParen, state.Settings.Readers.Expression)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RParen)
	if err != nil {
		return 0, err
	}

	children := append([]int{headID, openID}, args...)
	children = append(children, closeID)
	return state.endContext(ast.KindInvokeExpression, children, startTok)
}

func readItemAccessExpression(state *State, headID int) (int, error) {
	startTok := state.peek()
	ctx := state.Nodes.StartContext(ast.KindItemAccessExpression)
	state.Nodes.AdoptHead(ctx, headID)

	openID, err := state.consumeConstant(token.LBrace)
	if err != nil {
		return 0, err
	}
	itemID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RBrace)
	if err != nil {
		return 0, err
	}
	children := []int{headID, openID, itemID, closeID}

	if state.check(token.Question) {
		qID, err := state.consumeConstant(token.Question)
		if err != nil {
			return 0, err
		}
		children = append(children, qID)
	}
	return state.endContext(ast.KindItemAccessExpression, children, startTok)
}

func readFieldSelector(state *State, headID int) (int, error) {
	startTok := state.peek()
	ctx := state.Nodes.StartContext(ast.KindFieldSelector)
	state.Nodes.AdoptHead(ctx, headID)

	openID, err := state.consumeConstant(token.LBracket)
	if err != nil {
		return 0, err
	}
	fieldID, err := readGeneralizedIdentifier(state)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RBracket)
	if err != nil {
		return 0, err
	}
	children := []int{headID, openID, fieldID, closeID}

	if state.check(token.Question) {
		qID, err := state.consumeConstant(token.Question)
		if err != nil {
			return 0, err
		}
		children = append(children, qID)
	}
	return state.endContext(ast.KindFieldSelector, children, startTok)
}

// readFieldProjection parses "headExpr[[a], [b], ...]".
func readFieldProjection(state *State, headID int) (int, error) {
	startTok := state.peek()
	ctx := state.Nodes.StartContext(ast.KindFieldProjection)
	state.Nodes.AdoptHead(ctx, headID)

	openID, err := state.consumeConstant(token.LBracket)
	if err != nil {
		return 0, err
	}
	listID, err := readFieldSelectorList(state)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RBracket)
	if err != nil {
		return 0, err
	}
	children := []int{headID, openID, listID, closeID}

	if state.check(token.Question) {
		qID, err := state.consumeConstant(token.Question)
		if err != nil {
			return 0, err
		}
		children = append(children, qID)
	}
	return state.endContext(ast.KindFieldProjection, children, startTok)
}

func readFieldSelectorList(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindFieldSelectorList)

	names, err := readCsv(state, token.RBracket, readBracketedGeneralizedIdentifier)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindFieldSelectorList, names, startTok)
}

func readBracketedGeneralizedIdentifier(state *State) (int, error) {
	if _, err := state.expect(token.LBracket); err != nil {
		return 0, err
	}
	id, err := readGeneralizedIdentifier(state)
	if err != nil {
		return 0, err
	}
	if _, err := state.expect(token.RBracket); err != nil {
		return 0, err
	}
	return id, nil
}
