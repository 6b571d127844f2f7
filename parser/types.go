package parser

import (
	"github.com/dhamidi/mq/ast"
	"github.com/dhamidi/mq/perror"
	"github.com/dhamidi/mq/token"
)

// readTypeExpression parses "type primaryType".
func readTypeExpression(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindTypeExpression)

	kwID, err := state.consumeConstant(token.KwType)
	if err != nil {
		return 0, err
	}
	typeID, err := readTypePrimaryType(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindTypeExpression, []int{kwID, typeID}, startTok)
}

// readTypePrimaryType dispatches on the shape of the type being named:
// a primitive keyword, "nullable primitive", or one of the structured
// forms (record/table/list/function type).
func readTypePrimaryType(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindTypePrimaryType)

	var bodyID int
	var err error
	switch {
	case state.check(token.LBracket):
		bodyID, err = readRecordType(state)
	case state.isContextualKeyword("table"):
		bodyID, err = readTableType(state)
	case state.check(token.LBrace):
		bodyID, err = readListType(state)
	case state.isContextualKeyword("function"):
		bodyID, err = readFunctionType(state)
	case state.isContextualKeyword("nullable"):
		bodyID, err = readNullableType(state)
	default:
		bodyID, err = readPrimitiveType(state)
	}
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindTypePrimaryType, []int{bodyID}, startTok)
}

// readPrimitiveType reads one of the closed set of primitive type-name
// spellings (C7's primitive-type autocomplete suggests exactly this
// set).
func readPrimitiveType(state *State) (int, error) {
	tok := state.peek()
	if tok.Kind != token.Identifier {
		return 0, &perror.InvalidPrimitiveTypeError{Got: tok}
	}
	if _, ok := token.LookupPrimitiveType(tok.Literal); !ok {
		return 0, &perror.InvalidPrimitiveTypeError{Got: tok}
	}
	state.advance()
	return state.leaf(ast.KindPrimitiveType, tok)
}

// readNullablePrimitiveType parses "[nullable] primitiveType".
func readNullablePrimitiveType(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindNullablePrimitiveType)

	var children []int
	if state.isContextualKeyword("nullable") {
		tok := state.advance()
		id, _ := state.leaf(ast.KindConstant, tok)
		children = append(children, id)
	}
	typeID, err := readPrimitiveType(state)
	if err != nil {
		return 0, err
	}
	children = append(children, typeID)
	return state.endContext(ast.KindNullablePrimitiveType, children, startTok)
}

// readNullableType parses "nullable primaryType" for the structured
// (non-primitive) type forms.
func readNullableType(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindNullableType)

	tok := state.advance() // "nullable"
	kwID, _ := state.leaf(ast.KindConstant, tok)
	typeID, err := readTypePrimaryType(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindNullableType, []int{kwID, typeID}, startTok)
}

// readRecordType parses "[ name = type, ... ]" (optionally open, via a
// trailing "...", which is consumed but not separately represented).
func readRecordType(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindRecordType)

	openID, err := state.consumeConstant(token.LBracket)
	if err != nil {
		return 0, err
	}
	fields, err := readCsv(state, token.RBracket, readFieldTypeSpec)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RBracket)
	if err != nil {
		return 0, err
	}
	children := append([]int{openID}, fields...)
	children = append(children, closeID)
	return state.endContext(ast.KindRecordType, children, startTok)
}

// readFieldTypeSpec reads "name = type" inside a record-type literal,
// reusing the GeneralizedIdentifierPairedExpression shape (its right
// side is a type rather than a value expression here, but the grammar
// node has no kind of its own to carry that distinction, matching
// flat, no-inheritance node shape).
func readFieldTypeSpec(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindGeneralizedIdentifierPairedExpression)

	nameID, err := readGeneralizedIdentifier(state)
	if err != nil {
		return 0, err
	}
	eqID, err := state.consumeConstant(token.Equal)
	if err != nil {
		return 0, err
	}
	typeID, err := readTypePrimaryType(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindGeneralizedIdentifierPairedExpression, []int{nameID, eqID, typeID}, startTok)
}

// readTableType parses "table [ rowType ]" or "table rowType".
func readTableType(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindTableType)

	tok := state.advance() // "table"
	kwID, _ := state.leaf(ast.KindConstant, tok)
	rowID, err := readTypePrimaryType(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindTableType, []int{kwID, rowID}, startTok)
}

// readListType parses "{ elementType }".
func readListType(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindListType)

	openID, err := state.consumeConstant(token.LBrace)
	if err != nil {
		return 0, err
	}
	elemID, err := readTypePrimaryType(state)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RBrace)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindListType, []int{openID, elemID, closeID}, startTok)
}

// readFunctionType parses "function (param : type, ...) as returnType".
func readFunctionType(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindFunctionType)

	tok := state.advance() // "function"
	kwID, _ := state.leaf(ast.KindConstant, tok)

	openID, err := state.consumeConstant(token.LParen)
	if err != nil {
		return 0, err
	}
	params, err := readCsv(state, token.RParen, readFunctionTypeParameter)
	if err != nil {
		return 0, err
	}
	closeID, err := state.consumeConstant(token.RParen)
	if err != nil {
		return 0, err
	}
	asID, err := state.consumeConstant(token.KwAs)
	if err != nil {
		return 0, err
	}
	returnID, err := readTypePrimaryType(state)
	if err != nil {
		return 0, err
	}

	children := append([]int{kwID, openID}, params...)
	children = append(children, closeID, asID, returnID)
	return state.endContext(ast.KindFunctionType, children, startTok)
}

func readFunctionTypeParameter(state *State) (int, error) {
	startTok := state.peek()
	state.Nodes.StartContext(ast.KindParameter)

	nameID, err := readIdentifier(state)
	if err != nil {
		return 0, err
	}
	asID, err := state.consumeConstant(token.KwAs)
	if err != nil {
		return 0, err
	}
	typeID, err := readTypePrimaryType(state)
	if err != nil {
		return 0, err
	}
	return state.endContext(ast.KindParameter, []int{nameID, asID, typeID}, startTok)
}
