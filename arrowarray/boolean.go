package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// BooleanArray is a bit-packed boolean column: a values bitmap plus an
// optional validity bitmap.
type BooleanArray struct {
	values    Bitmap
	validity  Bitmap
	hasValid  bool
	nullCount int
}

var _ Array = BooleanArray{}

func NewBooleanArray(values Bitmap, validity Bitmap, hasValidity bool) BooleanArray {
	a := BooleanArray{values: values, validity: validity, hasValid: hasValidity}
	if hasValidity {
		a.nullCount = validity.NullCount()
	}

	return a
}

func (a BooleanArray) Len() int                    { return a.values.Len() }
func (a BooleanArray) NullCount() int               { return a.nullCount }
func (a BooleanArray) Validity() (Bitmap, bool)     { return a.validity, a.hasValid }
func (a BooleanArray) DataType() arrowtype.DataType { return arrowtype.NewBoolean() }
func (a BooleanArray) Values() Bitmap               { return a.values }

func (a BooleanArray) Slice(offset, length int) Array {
	validity, hasV := validitySlice(a.validity, a.hasValid, offset, length)

	return NewBooleanArray(a.values.Slice(offset, length), validity, hasV)
}
