package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// ListArray is a variable-length nested column: offsets.len() == len()+1,
// and values are fetched from the child Array at [offsets[i], offsets[i+1]).
type ListArray[O Offset] struct {
	large     bool
	elemField arrowtype.Field
	offsets   []O
	child     Array
	validity  Bitmap
	hasValid  bool
	nullCount int
}

var _ Array = ListArray[int32]{}

func NewListArray[O Offset](elemField arrowtype.Field, offsets []O, child Array, validity Bitmap, hasValidity, large bool) ListArray[O] {
	a := ListArray[O]{
		large: large, elemField: elemField,
		offsets: offsets, child: child,
		validity: validity, hasValid: hasValidity,
	}
	if hasValidity {
		a.nullCount = validity.NullCount()
	}

	return a
}

func (a ListArray[O]) Len() int                { return len(a.offsets) - 1 }
func (a ListArray[O]) NullCount() int           { return a.nullCount }
func (a ListArray[O]) Validity() (Bitmap, bool) { return a.validity, a.hasValid }

func (a ListArray[O]) DataType() arrowtype.DataType {
	if a.large {
		return arrowtype.NewLargeList(a.elemField)
	}

	return arrowtype.NewList(a.elemField)
}

func (a ListArray[O]) Offsets() []O { return a.offsets }
func (a ListArray[O]) Child() Array { return a.child }

// ValueAt returns the child array slice for logical row i.
func (a ListArray[O]) ValueAt(i int) Array {
	start, end := int(a.offsets[i]), int(a.offsets[i+1])

	return a.child.Slice(start, end-start)
}

func (a ListArray[O]) Slice(offset, length int) Array {
	validity, hasV := validitySlice(a.validity, a.hasValid, offset, length)
	sliceOffsets := a.offsets[offset : offset+length+1]

	return NewListArray(a.elemField, sliceOffsets, a.child, validity, hasV, a.large)
}

// FixedSizeListArray is a nested column where every row has exactly N
// child values: values.len() == len()*n.
type FixedSizeListArray struct {
	n         int
	elemField arrowtype.Field
	child     Array
	validity  Bitmap
	hasValid  bool
	nullCount int
	length    int
}

var _ Array = FixedSizeListArray{}

func NewFixedSizeListArray(elemField arrowtype.Field, n, length int, child Array, validity Bitmap, hasValidity bool) FixedSizeListArray {
	a := FixedSizeListArray{n: n, elemField: elemField, child: child, length: length, validity: validity, hasValid: hasValidity}
	if hasValidity {
		a.nullCount = validity.NullCount()
	}

	return a
}

func (a FixedSizeListArray) Len() int                    { return a.length }
func (a FixedSizeListArray) NullCount() int               { return a.nullCount }
func (a FixedSizeListArray) Validity() (Bitmap, bool)     { return a.validity, a.hasValid }
func (a FixedSizeListArray) DataType() arrowtype.DataType { return arrowtype.NewFixedSizeList(a.elemField, a.n) }
func (a FixedSizeListArray) Child() Array                 { return a.child }
func (a FixedSizeListArray) N() int                       { return a.n }

func (a FixedSizeListArray) ValueAt(i int) Array {
	return a.child.Slice(i*a.n, a.n)
}

func (a FixedSizeListArray) Slice(offset, length int) Array {
	validity, hasV := validitySlice(a.validity, a.hasValid, offset, length)

	return NewFixedSizeListArray(a.elemField, a.n, length, a.child.Slice(offset*a.n, length*a.n), validity, hasV)
}
