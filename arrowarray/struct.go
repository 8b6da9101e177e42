package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// StructArray groups one child Array per field, all of the same length.
type StructArray struct {
	fields    []arrowtype.Field
	children  []Array
	validity  Bitmap
	hasValid  bool
	nullCount int
	length    int
}

var _ Array = StructArray{}

func NewStructArray(fields []arrowtype.Field, children []Array, length int, validity Bitmap, hasValidity bool) StructArray {
	a := StructArray{fields: fields, children: children, length: length, validity: validity, hasValid: hasValidity}
	if hasValidity {
		a.nullCount = validity.NullCount()
	}

	return a
}

func (a StructArray) Len() int                    { return a.length }
func (a StructArray) NullCount() int               { return a.nullCount }
func (a StructArray) Validity() (Bitmap, bool)     { return a.validity, a.hasValid }
func (a StructArray) DataType() arrowtype.DataType { return arrowtype.NewStruct(a.fields) }
func (a StructArray) Children() []Array            { return a.children }
func (a StructArray) Field(i int) Array            { return a.children[i] }

func (a StructArray) Slice(offset, length int) Array {
	validity, hasV := validitySlice(a.validity, a.hasValid, offset, length)

	children := make([]Array, len(a.children))
	for i, c := range a.children {
		children[i] = c.Slice(offset, length)
	}

	return NewStructArray(a.fields, children, length, validity, hasV)
}
