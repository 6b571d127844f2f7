package parser

import (
	"github.com/dhamidi/mq/perror"
	"github.com/dhamidi/mq/token"
)

// readCsv reads a comma-separated sequence of items terminated by
// terminator (not consumed), stopping immediately before terminator and
// raising ExpectedCsvContinuationError if neither a continuation comma
// nor the terminator is found — the "illegal ',' placement" diagnostic
// (dangling comma, or a comma immediately before "in").
func readCsv(state *State, terminator token.Kind, item ReaderFunc) ([]int, error) {
	var ids []int
	if state.check(terminator) {
		return ids, nil
	}
	for {
		id, err := item(state)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)

		if state.check(terminator) {
			return ids, nil
		}
		if !state.check(token.Comma) {
			return ids, &perror.ExpectedCsvContinuationError{Got: state.peek()}
		}
		state.advance()
		if state.check(terminator) {
			return ids, &perror.ExpectedCsvContinuationError{Got: state.peek()}
		}
	}
}
