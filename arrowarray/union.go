package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// UnionArray is a tagged union of children: Dense mode carries per-row
// offsets into the selected child, Sparse mode carries no offsets (every
// child has length() rows, only the selected one is meaningful). A union
// is never null itself: every row always selects some child, so there is
// no top-level validity bitmap to carry; NewUnionArray's signature
// reflects that structurally rather than rejecting one at construction.
type UnionArray struct {
	mode     arrowtype.UnionMode
	fields   []arrowtype.Field
	typeIDs  []int8
	children []Array
	rowTypes []int8 // per-row selected type id
	offsets  []int32 // Dense only; nil for Sparse
	length   int
}

func NewUnionArray(mode arrowtype.UnionMode, fields []arrowtype.Field, typeIDs []int8, children []Array, rowTypes []int8, offsets []int32) (UnionArray, error) {
	if mode == arrowtype.UnionDense && len(offsets) != len(rowTypes) {
		return UnionArray{}, errDenseOffsetsMismatch
	}

	return UnionArray{
		mode: mode, fields: fields, typeIDs: typeIDs,
		children: children, rowTypes: rowTypes, offsets: offsets,
		length: len(rowTypes),
	}, nil
}

var _ Array = UnionArray{}

func (a UnionArray) Len() int                { return a.length }
func (a UnionArray) NullCount() int           { return 0 }
func (a UnionArray) Validity() (Bitmap, bool) { return Bitmap{}, false }

func (a UnionArray) DataType() arrowtype.DataType {
	return arrowtype.NewUnion(a.mode, a.fields, a.typeIDs)
}

func (a UnionArray) Children() []Array  { return a.children }
func (a UnionArray) RowTypes() []int8   { return a.rowTypes }
func (a UnionArray) Offsets() []int32   { return a.offsets }
func (a UnionArray) Mode() arrowtype.UnionMode { return a.mode }

// childIndex maps a type id to its position in fields/children, honoring
// an explicit typeIDs mapping when one was declared, falling back to a
// positional mapping (type id == child index) otherwise.
func (a UnionArray) childIndex(typeID int8) int {
	for i, id := range a.typeIDs {
		if id == typeID {
			return i
		}
	}

	return int(typeID)
}

// ValueAt returns the single value row i resolves to, from whichever
// child the row's type id selects.
func (a UnionArray) ValueAt(i int) Array {
	idx := a.childIndex(a.rowTypes[i])
	if a.mode == arrowtype.UnionDense {
		return a.children[idx].Slice(int(a.offsets[i]), 1)
	}

	return a.children[idx].Slice(i, 1)
}

func (a UnionArray) Slice(offset, length int) Array {
	rowTypes := a.rowTypes[offset : offset+length]

	var offsets []int32
	if a.mode == arrowtype.UnionDense {
		offsets = a.offsets[offset : offset+length]
	}

	children := a.children
	if a.mode == arrowtype.UnionSparse {
		children = make([]Array, len(a.children))
		for i, c := range a.children {
			children[i] = c.Slice(offset, length)
		}
	}

	out, _ := NewUnionArray(a.mode, a.fields, a.typeIDs, children, rowTypes, offsets)

	return out
}
