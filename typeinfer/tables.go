package typeinfer

import "github.com/dhamidi/mq/token"

// opKey is the full lookup table's key: (leftKind, opKind, rightKind).
type opKey struct {
	Left  PrimitiveKind
	Op    token.Kind
	Right PrimitiveKind
}

// partialKey is opKey with the last component stripped — the "partial"
// index derives by construction.
type partialKey struct {
	Left PrimitiveKind
	Op   token.Kind
}

var fullTable map[opKey]PrimitiveKind
var partialTable map[partialKey][]PrimitiveKind

// comparableKinds is the ordered set of primitive kinds the relational
// operators {>, >=, <, <=} apply to.
var comparableKinds = []PrimitiveKind{
	KindNumber, KindText, KindDate, KindTime, KindDateTime, KindDateTimeZone, KindDuration,
}

// equatableKinds is the set of primitive kinds the equality operators
// {=, <>} apply to — "every kind" except Unknown, which never
// participates in a resolved comparison.
var equatableKinds = []PrimitiveKind{
	KindAny, KindAnyNonNull, KindNone, KindNull, KindLogical, KindNumber,
	KindTime, KindDate, KindDateTime, KindDateTimeZone, KindDuration,
	KindText, KindBinary, KindList, KindRecord, KindTable, KindFunction, KindAction,
}

var clockKinds = []PrimitiveKind{KindTime, KindDate, KindDateTime, KindDateTimeZone}

// selfCombineKinds is the set of kinds with an "&: K,K -> K" entry;
// Record and Table results of that entry are then refined by
// combineRecordOrTable's extended-merge rule.
var selfCombineKinds = []PrimitiveKind{KindText, KindList, KindRecord, KindTable}

func init() {
	fullTable = make(map[opKey]PrimitiveKind)
	partialTable = make(map[partialKey][]PrimitiveKind)

	for _, k := range comparableKinds {
		for _, op := range []token.Kind{token.GreaterThan, token.GreaterThanOrEqual, token.LessThan, token.LessThanOrEqual} {
			set(k, op, k, KindLogical)
		}
	}
	for _, k := range equatableKinds {
		for _, op := range []token.Kind{token.Equal, token.NotEqual} {
			set(k, op, k, KindLogical)
		}
	}

	for _, op := range []token.Kind{token.Plus, token.Minus, token.Star, token.Slash} {
		set(KindNumber, op, KindNumber, KindNumber)
	}

	for _, op := range []token.Kind{token.KwAnd, token.KwOr} {
		set(KindLogical, op, KindLogical, KindLogical)
	}

	for _, k := range clockKinds {
		set(k, token.Plus, KindDuration, k)
		set(KindDuration, token.Plus, k, k)
		set(k, token.Minus, KindDuration, k)
		set(k, token.Minus, k, KindDuration)
	}
	set(KindDate, token.Ampersand, KindTime, KindDateTime)

	set(KindDuration, token.Plus, KindDuration, KindDuration)
	set(KindDuration, token.Minus, KindDuration, KindDuration)
	set(KindDuration, token.Star, KindNumber, KindDuration)
	set(KindNumber, token.Star, KindDuration, KindDuration)
	set(KindDuration, token.Slash, KindNumber, KindDuration)

	for _, k := range selfCombineKinds {
		set(k, token.Ampersand, k, k)
	}
}

func set(left PrimitiveKind, op token.Kind, right PrimitiveKind, result PrimitiveKind) {
	fullTable[opKey{left, op, right}] = result
	pk := partialKey{left, op}
	partialTable[pk] = appendUnique(partialTable[pk], result)
}

func appendUnique(kinds []PrimitiveKind, k PrimitiveKind) []PrimitiveKind {
	for _, existing := range kinds {
		if existing == k {
			return kinds
		}
	}
	return append(kinds, k)
}

// lookupFull is the "full lookup table keyed by (leftKind, opKind,
// rightKind)" step 3 calls for.
func lookupFull(left PrimitiveKind, op token.Kind, right PrimitiveKind) (PrimitiveKind, bool) {
	r, ok := fullTable[opKey{left, op, right}]
	return r, ok
}

// lookupPartial is the "partial" index step 2 calls for:
// the set of admissible result kinds once only the left operand and
// operator are known.
func lookupPartial(left PrimitiveKind, op token.Kind) ([]PrimitiveKind, bool) {
	r, ok := partialTable[partialKey{left, op}]
	return r, ok
}

// isRecordOrTableCombine reports whether op/result pair is the
// Record/Table "&" case step 4 special-cases.
func isRecordOrTableCombine(op token.Kind, result PrimitiveKind) bool {
	return op == token.Ampersand && (result == KindRecord || result == KindTable)
}
