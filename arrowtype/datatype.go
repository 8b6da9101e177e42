// Package arrowtype defines the logical type system shared by arrowarray,
// ipc, and page: a tagged DataType variant and its PhysicalType
// projection.
package arrowtype

import "fmt"

// Kind tags the logical type of a DataType. Kind and PhysicalType usually
// coincide; Dictionary is the one case where the logical Kind
// (Dictionary) and the physical encoding on the wire (the key type) part
// ways. The ipc Writer and Reader switch on Kind and handle Dictionary as
// its own case.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBoolean
	KindPrimitive
	KindBinary
	KindLargeBinary
	KindUtf8
	KindLargeUtf8
	KindFixedSizeBinary
	KindList
	KindLargeList
	KindFixedSizeList
	KindStruct
	KindUnion
	KindMap
	KindDictionary
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindPrimitive:
		return "primitive"
	case KindBinary:
		return "binary"
	case KindLargeBinary:
		return "large_binary"
	case KindUtf8:
		return "utf8"
	case KindLargeUtf8:
		return "large_utf8"
	case KindFixedSizeBinary:
		return "fixed_size_binary"
	case KindList:
		return "list"
	case KindLargeList:
		return "large_list"
	case KindFixedSizeList:
		return "fixed_size_list"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindMap:
		return "map"
	case KindDictionary:
		return "dictionary"
	default:
		return "invalid"
	}
}

// Primitive enumerates the fixed-width scalar physical types.
type Primitive uint8

const (
	I8 Primitive = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F16
	F32
	F64
	I128
	I256
	Days32
	Ms64
	Ns64
	Month12
)

// ByteWidth returns the fixed on-wire width of p in bytes.
func (p Primitive) ByteWidth() int {
	switch p {
	case I8, U8:
		return 1
	case I16, U16, F16:
		return 2
	case I32, U32, F32, Days32, Month12:
		return 4
	case I64, U64, F64, Ms64, Ns64:
		return 8
	case I128:
		return 16
	case I256:
		return 32
	default:
		return 0
	}
}

func (p Primitive) String() string {
	names := [...]string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64",
		"f16", "f32", "f64", "i128", "i256", "days32", "ms64", "ns64", "month12"}
	if int(p) < len(names) {
		return names[p]
	}

	return fmt.Sprintf("primitive(%d)", uint8(p))
}

// UnionMode selects Dense or Sparse child layout for a Union type.
type UnionMode uint8

const (
	UnionSparse UnionMode = iota
	UnionDense
)

func (m UnionMode) String() string {
	if m == UnionDense {
		return "dense"
	}

	return "sparse"
}

// DataType is a tagged variant over the supported logical types. Only the
// fields relevant to Kind are populated; the zero value of every other
// field is ignored by codec dispatch.
type DataType struct {
	kind Kind

	primitive Primitive

	fixedWidth int // FixedSizeBinary width, or FixedSizeList element count

	fields []Field // Struct fields, or the single List/Map child wrapped as a Field

	unionMode    UnionMode
	unionTypeIDs []int8

	mapKeysSorted bool

	dictKeyType   Primitive
	dictValueType DataType
	dictOrdered   bool
	dictID        uint64
}

// Kind returns the logical type tag.
func (t DataType) Kind() Kind { return t.kind }

// Primitive returns the scalar physical type. Valid only when Kind() ==
// KindPrimitive.
func (t DataType) Primitive() Primitive { return t.primitive }

// FixedWidth returns the FixedSizeBinary byte width or the FixedSizeList
// element count, depending on Kind().
func (t DataType) FixedWidth() int { return t.fixedWidth }

// Fields returns the child fields: all of them for Struct, the element
// field for List/LargeList/FixedSizeList, or the entries field for Map.
func (t DataType) Fields() []Field { return t.fields }

// Elem returns the single child field of a List/LargeList/FixedSizeList/Map
// type. Panics if t does not carry exactly one child field.
func (t DataType) Elem() Field {
	if len(t.fields) != 1 {
		panic(fmt.Sprintf("arrowtype: %s has no single element field", t.kind))
	}

	return t.fields[0]
}

// UnionMode returns the Union layout mode. Valid only when Kind() == KindUnion.
func (t DataType) UnionMode() UnionMode { return t.unionMode }

// UnionTypeIDs returns the declared type-id mapping for a Union type,
// consulted by UnionArray.childIndex to resolve a row's selected child.
func (t DataType) UnionTypeIDs() []int8 { return t.unionTypeIDs }

// MapKeysSorted reports whether a Map's entries are sorted by key.
func (t DataType) MapKeysSorted() bool { return t.mapKeysSorted }

// DictKeyType returns the integer physical type backing a Dictionary's keys.
func (t DataType) DictKeyType() Primitive { return t.dictKeyType }

// DictValueType returns the logical type of a Dictionary's values.
func (t DataType) DictValueType() DataType { return t.dictValueType }

// DictOrdered reports whether a Dictionary's values are meaningfully ordered.
func (t DataType) DictOrdered() bool { return t.dictOrdered }

// DictID returns the dictionary id a Dictionary type's keys resolve
// against in an ipc.Dictionaries table.
func (t DataType) DictID() uint64 { return t.dictID }

// PhysicalType is a DataType's wire-level encoding; it differs from Kind
// only for Dictionary, where the wire-level encoding of the keys buffer is
// driven by DictKeyType rather than the logical Dictionary tag.
type PhysicalType struct {
	Kind      Kind
	Primitive Primitive
}

// Physical projects t onto its PhysicalType.
func (t DataType) Physical() PhysicalType {
	if t.kind == KindDictionary {
		return PhysicalType{Kind: KindPrimitive, Primitive: t.dictKeyType}
	}

	return PhysicalType{Kind: t.kind, Primitive: t.primitive}
}

func NewNull() DataType    { return DataType{kind: KindNull} }
func NewBoolean() DataType { return DataType{kind: KindBoolean} }

func NewPrimitive(p Primitive) DataType { return DataType{kind: KindPrimitive, primitive: p} }

func NewBinary() DataType      { return DataType{kind: KindBinary} }
func NewLargeBinary() DataType { return DataType{kind: KindLargeBinary} }
func NewUtf8() DataType        { return DataType{kind: KindUtf8} }
func NewLargeUtf8() DataType   { return DataType{kind: KindLargeUtf8} }

func NewFixedSizeBinary(width int) DataType {
	return DataType{kind: KindFixedSizeBinary, fixedWidth: width}
}

func NewList(elem Field) DataType {
	return DataType{kind: KindList, fields: []Field{elem}}
}

func NewLargeList(elem Field) DataType {
	return DataType{kind: KindLargeList, fields: []Field{elem}}
}

func NewFixedSizeList(elem Field, n int) DataType {
	return DataType{kind: KindFixedSizeList, fields: []Field{elem}, fixedWidth: n}
}

func NewStruct(fields []Field) DataType {
	return DataType{kind: KindStruct, fields: fields}
}

func NewUnion(mode UnionMode, fields []Field, typeIDs []int8) DataType {
	return DataType{kind: KindUnion, unionMode: mode, fields: fields, unionTypeIDs: typeIDs}
}

func NewMap(entries Field, keysSorted bool) DataType {
	return DataType{kind: KindMap, fields: []Field{entries}, mapKeysSorted: keysSorted}
}

func NewDictionary(keyType Primitive, valueType DataType, ordered bool, dictID uint64) DataType {
	return DataType{
		kind:          KindDictionary,
		dictKeyType:   keyType,
		dictValueType: valueType,
		dictOrdered:   ordered,
		dictID:        dictID,
	}
}

// Field pairs a name and DataType, mirroring a schema field descriptor.
type Field struct {
	Name     string
	Type     DataType
	Nullable bool
}
