package parser

import (
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/token"
)

// readExpression is the grammar's Expression nonterminal: one of the
// keyword-led forms, or (by far the common case) the TBinOpExpression
// precedence chain bottoming out at a primary expression.
func readExpression(state *State) (int, error) {
	if err := state.checkCancellation(); err != nil {
		return 0, err
	}
	switch state.peek().Kind {
	case token.KwLet:
		return readLetExpression(state)
	case token.KwIf:
		return readIfExpression(state)
	case token.KwTry:
		return readErrorHandlingExpression(state)
	case token.KwError:
		return readErrorRaisingExpression(state)
	case token.KwEach:
		return readEachExpression(state)
	default:
		return readLogicalOrExpression(state)
	}
}

// readLetExpression parses "let binding,* in expression".
func readLetExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindLetExpression)

	if _, err := state.consumeConstant(token.KwLet); err != nil {
		return 0, err
	}
	bindings, err := readCsv(state, token.KwIn, readIdentifierPairedExpression)
	if err != nil {
		return 0, err
	}
	inID, err := state.consumeConstant(token.KwIn)
	if err != nil {
		return 0, err
	}
	bodyID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}

	children := append(bindings, inID, bodyID)
	return state.endContext(ast.KindLetExpression, children, startTok)
}

// readIfExpression parses "if cond then true-branch else false-branch".
func readIfExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindIfExpression)

	ifID, err := state.consumeConstant(token.KwIf)
	if err != nil {
		return 0, err
	}
	condID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	thenID, err := state.consumeConstant(token.KwThen)
	if err != nil {
		return 0, err
	}
	trueID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	elseID, err := state.consumeConstant(token.KwElse)
	if err != nil {
		return 0, err
	}
	falseID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}

	children := []int{ifID, condID, thenID, trueID, elseID, falseID}
	return state.endContext(ast.KindIfExpression, children, startTok)
}

// readErrorHandlingExpression parses "try expr [otherwise expr]".
func readErrorHandlingExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindErrorHandlingExpression)

	tryID, err := state.consumeConstant(token.KwTry)
	if err != nil {
		return 0, err
	}
	protectedID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	children := []int{tryID, protectedID}

	if state.check(token.KwOtherwise) {
		otherwiseID, err := state.consumeConstant(token.KwOtherwise)
		if err != nil {
			return 0, err
		}
		handlerID, err := state.Settings.Readers.Expression(state)
		if err != nil {
			return 0, err
		}
		children = append(children, otherwiseID, handlerID)
	}

	return state.endContext(ast.KindErrorHandlingExpression, children, startTok)
}

// readErrorRaisingExpression parses "error expr".
func readErrorRaisingExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindErrorRaisingExpression)

	errID, err := state.consumeConstant(token.KwError)
	if err != nil {
		return 0, err
	}
	exprID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindErrorRaisingExpression, []int{errID, exprID}, startTok)
}

// readEachExpression parses "each expr", a shorthand lambda.
func readEachExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindEachExpression)

	eachID, err := state.consumeConstant(token.KwEach)
	if err != nil {
		return 0, err
	}
	exprID, err := state.Settings.Readers.Expression(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindEachExpression, []int{eachID, exprID}, startTok)
}

// binOpLevel is one rung of the TBinOpExpression precedence ladder.
// It starts a context for kind BEFORE reading its operand so that, if
// no operator of this level follows, the wrapper context can simply be
// deleted and its sole child (the operand) reparented straight to the
// grandparent — no TBinOpExpression node is ever built for a bare
// operand.
func binOpLevel(kind ast.Kind, next ReaderFunc, ops ...token.Kind) ReaderFunc {
	return func(state *State) (int, error) {
		if err := state.checkCancellation(); err != nil {
			return 0, err
		}
		startTok := state.peek()
		ctx := state.Nodes.StartContext(kind)

		leftID, err := next(state)
		if err != nil {
			return 0, err
		}

		opTok := state.peek()
		if !isOpMatch(opTok.Kind, ops) {
			if _, delErr := state.Nodes.DeleteContext(ctx.ID, false); delErr != nil {
				return 0, delErr
			}
			return leftID, nil
		}

		opID, err := state.consumeConstant(opTok.Kind)
		if err != nil {
			return 0, err
		}
		rightID, err := next(state)
		if err != nil {
			return 0, err
		}

		node := &ast.Node{
			Kind:          kind,
			Children:      []int{leftID, opID, rightID},
			Span:          state.spanFrom(startTok),
			BinOpOperator: opTok.Kind,
		}
		if _, endErr := state.Nodes.EndContext(node); endErr != nil {
			return 0, endErr
		}
		return ctx.ID, nil
	}
}

func isOpMatch(k token.Kind, ops []token.Kind) bool {
	for _, o := range ops {
		if k == o {
			return true
		}
	}
	return false
}

// readLogicalOrExpression ... readMetadataExpression form the
// TBinOpExpression ladder, loosest to tightest binding, bottoming out
// at readUnaryExpression.
var (
	readMetadataExpression     ReaderFunc
	readMultiplicativeExpression ReaderFunc
	readAdditiveExpression     ReaderFunc
	readRelationalExpression   ReaderFunc
	readEqualityExpression     ReaderFunc
	readAsExpression           ReaderFunc
	readIsExpression           ReaderFunc
	readLogicalAndExpression   ReaderFunc
	readLogicalOrExpression    ReaderFunc
)

func init() {
	readMetadataExpression = binOpLevel(ast.KindMetadataExpression, readUnaryExpression, token.KwMeta)
	readMultiplicativeExpression = binOpLevel(ast.KindMultiplicativeExpression, readMetadataExpression, token.Star, token.Slash)
	readAdditiveExpression = binOpLevel(ast.KindAdditiveExpression, readMultiplicativeExpression, token.Plus, token.Minus, token.Ampersand)
	readRelationalExpression = binOpLevel(ast.KindRelationalExpression, readAdditiveExpression, token.LessThan, token.LessThanOrEqual, token.GreaterThan, token.GreaterThanOrEqual)
	readEqualityExpression = binOpLevel(ast.KindEqualityExpression, readRelationalExpression, token.Equal, token.NotEqual)
	readIsExpression = binOpLevel(ast.KindIsExpression, readEqualityExpression, token.KwIs)
	readAsExpression = binOpLevel(ast.KindAsExpression, readIsExpression, token.KwAs)
	readLogicalAndExpression = binOpLevel(ast.KindLogicalAndExpression, readAsExpression, token.KwAnd)
	readLogicalOrExpression = binOpLevel(ast.KindLogicalOrExpression, readLogicalAndExpression, token.KwOr)
}

// readUnaryExpression parses an optional leading "+"/"-"/"not" against a
// TypeExpression-or-primary operand. M's unary operators don't nest a
// TBinOpExpression wrapper; they produce a KindUnaryExpression only when
// actually present.
func readUnaryExpression(state *State) (int, error) {
	if err := state.checkCancellation(); err != nil {
		return 0, err
	}
	switch state.peek().Kind {
	case token.Plus, token.Minus, token.KwNot:
		startTok := state.peek()
		state.Nodes.StartContext(ast.KindUnaryExpression)
		opID, err := state.consumeConstant(token.Plus, token.Minus, token.KwNot)
		if err != nil {
			return 0, err
		}
		operandID, err := readUnaryExpression(state)
		if err != nil {
			return 0, err
		}
		return state.endContext(ast.KindUnaryExpression, []int{opID, operandID}, startTok)
	case token.KwType:
		return readTypeExpression(state)
	default:
		return readPrimaryExpression(state)
	}
}
