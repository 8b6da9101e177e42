package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// NullArray is a column of length n where every value is null; it
// carries no buffers at all.
type NullArray struct {
	length int
}

var _ Array = NullArray{}

func NewNullArray(length int) NullArray { return NullArray{length: length} }

func (a NullArray) Len() int                      { return a.length }
func (a NullArray) NullCount() int                { return a.length }
func (a NullArray) Validity() (Bitmap, bool)       { return Bitmap{}, false }
func (a NullArray) DataType() arrowtype.DataType   { return arrowtype.NewNull() }
func (a NullArray) Slice(offset, length int) Array { return NullArray{length: length} }
