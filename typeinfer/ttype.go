// Package typeinfer implements the Binary-Op Type Inference engine (C8):
// given a TBinOpExpression XorNode, compute its TType from operator
// tables built once at startup, grounded on the same "enumerate
// children as XorNodes" shape java/at_point.go's ancestry code uses,
// applied here to type computation instead of position lookup.
package typeinfer

// PrimitiveKind is the closed set of M primitive type kinds a TType can
// carry.
type PrimitiveKind int

const (
	KindUnknown PrimitiveKind = iota
	KindAny
	KindAnyNonNull
	KindNone
	KindNull
	KindLogical
	KindNumber
	KindTime
	KindDate
	KindDateTime
	KindDateTimeZone
	KindDuration
	KindText
	KindBinary
	KindList
	KindRecord
	KindTable
	KindFunction
	KindAction
)

var primitiveKindNames = map[PrimitiveKind]string{
	KindUnknown:        "Unknown",
	KindAny:            "Any",
	KindAnyNonNull:     "AnyNonNull",
	KindNone:           "None",
	KindNull:           "Null",
	KindLogical:        "Logical",
	KindNumber:         "Number",
	KindTime:           "Time",
	KindDate:           "Date",
	KindDateTime:       "DateTime",
	KindDateTimeZone:   "DateTimeZone",
	KindDuration:       "Duration",
	KindText:           "Text",
	KindBinary:         "Binary",
	KindList:           "List",
	KindRecord:         "Record",
	KindTable:          "Table",
	KindFunction:       "Function",
	KindAction:         "Action",
}

func (k PrimitiveKind) String() string {
	if s, ok := primitiveKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Tag discriminates TType's variants.
type Tag int

const (
	TagUnknown Tag = iota
	TagPrimitive
	TagAnyUnion
	TagDefinedRecord
	TagDefinedTable
	TagFunction
)

// TType is the tagged union of inferred result shapes: a primitive
// kind, an AnyUnion over several candidate kinds, or an extended
// record/table/function shape. isNullable is carried on every variant.
type TType struct {
	Tag        Tag
	Primitive  PrimitiveKind
	IsNullable bool

	// AnyUnion members — each individually nullable per the partial
	// lookup rule: an AnyUnion of candidate kinds, each marked nullable.
	AnyUnion []PrimitiveKind

	// DefinedRecord/DefinedTable payload.
	Fields map[string]*TType
	IsOpen bool

	// Function payload. Only a return type is tracked (no parameters or
	// arity); the inference engine never needs more than that to answer
	// binary-op questions.
	ReturnType *TType
}

// Unknown is the result for an absent or unresolvable operand.
func Unknown() *TType { return &TType{Tag: TagUnknown} }

// Primitive builds a primitive TType.
func Primitive(kind PrimitiveKind, isNullable bool) *TType {
	return &TType{Tag: TagPrimitive, Primitive: kind, IsNullable: isNullable}
}

// AnyUnionOf builds the "partial lookup, multiple candidates" TType:
// each member kind is itself nullable, per step 2.
func AnyUnionOf(kinds []PrimitiveKind) *TType {
	return &TType{Tag: TagAnyUnion, AnyUnion: kinds, IsNullable: true}
}

// IsPrimitiveKind reports whether t is a Primitive TType of kind k.
func (t *TType) IsPrimitiveKind(k PrimitiveKind) bool {
	return t != nil && t.Tag == TagPrimitive && t.Primitive == k
}
