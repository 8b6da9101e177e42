package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// FixedSizeBinaryArray is a column of fixed-width byte values: len(values)
// == len()*width.
type FixedSizeBinaryArray struct {
	width     int
	values    []byte
	validity  Bitmap
	hasValid  bool
	nullCount int
}

var _ Array = FixedSizeBinaryArray{}

func NewFixedSizeBinaryArray(width int, values []byte, validity Bitmap, hasValidity bool) FixedSizeBinaryArray {
	a := FixedSizeBinaryArray{width: width, values: values, validity: validity, hasValid: hasValidity}
	if hasValidity {
		a.nullCount = validity.NullCount()
	}

	return a
}

func (a FixedSizeBinaryArray) Len() int                    { return len(a.values) / a.width }
func (a FixedSizeBinaryArray) NullCount() int               { return a.nullCount }
func (a FixedSizeBinaryArray) Validity() (Bitmap, bool)     { return a.validity, a.hasValid }
func (a FixedSizeBinaryArray) DataType() arrowtype.DataType { return arrowtype.NewFixedSizeBinary(a.width) }
func (a FixedSizeBinaryArray) Values() []byte               { return a.values }
func (a FixedSizeBinaryArray) Width() int                   { return a.width }

func (a FixedSizeBinaryArray) ValueAt(i int) []byte {
	return a.values[i*a.width : (i+1)*a.width]
}

func (a FixedSizeBinaryArray) Slice(offset, length int) Array {
	validity, hasV := validitySlice(a.validity, a.hasValid, offset, length)
	values := a.values[offset*a.width : (offset+length)*a.width]

	return NewFixedSizeBinaryArray(a.width, values, validity, hasV)
}
