package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// Offset is the constraint satisfied by both the i32 (Binary/Utf8/List/Map)
// and i64 (LargeBinary/LargeUtf8/LargeList) offset widths.
type Offset interface{ ~int32 | ~int64 }

// BinaryArray is a variable-length byte column: offsets.len() == len()+1,
// values.len() == offsets[len()]. utf8 marks whether Values must hold
// valid UTF-8 per offset slice.
type BinaryArray[O Offset] struct {
	large     bool
	utf8      bool
	offsets   []O
	values    []byte
	validity  Bitmap
	hasValid  bool
	nullCount int
}

var _ Array = BinaryArray[int32]{}

func NewBinaryArray[O Offset](offsets []O, values []byte, validity Bitmap, hasValidity, large, utf8 bool) BinaryArray[O] {
	a := BinaryArray[O]{
		large: large, utf8: utf8,
		offsets: offsets, values: values,
		validity: validity, hasValid: hasValidity,
	}
	if hasValidity {
		a.nullCount = validity.NullCount()
	}

	return a
}

func (a BinaryArray[O]) Len() int                { return len(a.offsets) - 1 }
func (a BinaryArray[O]) NullCount() int           { return a.nullCount }
func (a BinaryArray[O]) Validity() (Bitmap, bool) { return a.validity, a.hasValid }

func (a BinaryArray[O]) DataType() arrowtype.DataType {
	switch {
	case a.large && a.utf8:
		return arrowtype.NewLargeUtf8()
	case a.large:
		return arrowtype.NewLargeBinary()
	case a.utf8:
		return arrowtype.NewUtf8()
	default:
		return arrowtype.NewBinary()
	}
}

func (a BinaryArray[O]) Offsets() []O { return a.offsets }
func (a BinaryArray[O]) Values() []byte { return a.values }

// ValueAt returns the byte slice for logical row i.
func (a BinaryArray[O]) ValueAt(i int) []byte {
	return a.values[a.offsets[i]:a.offsets[i+1]]
}

func (a BinaryArray[O]) Slice(offset, length int) Array {
	validity, hasV := validitySlice(a.validity, a.hasValid, offset, length)
	sliceOffsets := a.offsets[offset : offset+length+1]

	return NewBinaryArray(sliceOffsets, a.values, validity, hasV, a.large, a.utf8)
}
