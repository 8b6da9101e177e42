package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// Array is the capability set every concrete variant exposes to general
// callers. Codec internals downcast to a concrete type at the dispatch
// points in ipc.Writer/Reader and page.Decoder; nothing else in the
// module touches a variant's private buffers directly.
type Array interface {
	Len() int
	NullCount() int
	Validity() (Bitmap, bool)
	DataType() arrowtype.DataType
	Slice(offset, length int) Array
}

// validitySlice is the shared helper every variant's Slice implementation
// uses to carry a validity bitmap forward without re-materializing it.
func validitySlice(v Bitmap, hasV bool, offset, length int) (Bitmap, bool) {
	if !hasV {
		return Bitmap{}, false
	}

	return v.Slice(offset, length), true
}
