package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// Number is the constraint satisfied by every fixed-width scalar Go
// representation the codecs move to/from the wire.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// PrimitiveArray is a fixed-width scalar column: a validity bitmap plus
// typed values.
type PrimitiveArray[T Number] struct {
	dt        arrowtype.DataType
	values    []T
	validity  Bitmap
	hasValid  bool
	nullCount int
}

var _ Array = PrimitiveArray[int32]{}

func NewPrimitiveArray[T Number](dt arrowtype.DataType, values []T, validity Bitmap, hasValidity bool) PrimitiveArray[T] {
	a := PrimitiveArray[T]{dt: dt, values: values, validity: validity, hasValid: hasValidity}
	if hasValidity {
		a.nullCount = validity.NullCount()
	}

	return a
}

func (a PrimitiveArray[T]) Len() int                    { return len(a.values) }
func (a PrimitiveArray[T]) NullCount() int               { return a.nullCount }
func (a PrimitiveArray[T]) Validity() (Bitmap, bool)     { return a.validity, a.hasValid }
func (a PrimitiveArray[T]) DataType() arrowtype.DataType { return a.dt }
func (a PrimitiveArray[T]) Values() []T                  { return a.values }

func (a PrimitiveArray[T]) Slice(offset, length int) Array {
	validity, hasV := validitySlice(a.validity, a.hasValid, offset, length)

	return NewPrimitiveArray(a.dt, a.values[offset:offset+length], validity, hasV)
}
