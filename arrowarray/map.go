package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// MapArray is a List<Struct<key,value>> specialization: offsets delineate
// per-row entry spans into a single entries StructArray child. Map
// offsets are always i32, never i64 — there is no LargeMap variant.
type MapArray struct {
	entriesField arrowtype.Field
	keysSorted   bool
	offsets      []int32
	entries      StructArray
	validity     Bitmap
	hasValid     bool
	nullCount    int
}

var _ Array = MapArray{}

func NewMapArray(entriesField arrowtype.Field, keysSorted bool, offsets []int32, entries StructArray, validity Bitmap, hasValidity bool) MapArray {
	a := MapArray{
		entriesField: entriesField, keysSorted: keysSorted,
		offsets: offsets, entries: entries,
		validity: validity, hasValid: hasValidity,
	}
	if hasValidity {
		a.nullCount = validity.NullCount()
	}

	return a
}

func (a MapArray) Len() int                    { return len(a.offsets) - 1 }
func (a MapArray) NullCount() int               { return a.nullCount }
func (a MapArray) Validity() (Bitmap, bool)     { return a.validity, a.hasValid }
func (a MapArray) DataType() arrowtype.DataType { return arrowtype.NewMap(a.entriesField, a.keysSorted) }
func (a MapArray) Offsets() []int32             { return a.offsets }
func (a MapArray) Entries() StructArray         { return a.entries }

func (a MapArray) ValueAt(i int) StructArray {
	start, end := int(a.offsets[i]), int(a.offsets[i+1])

	return a.entries.Slice(start, end-start).(StructArray)
}

func (a MapArray) Slice(offset, length int) Array {
	validity, hasV := validitySlice(a.validity, a.hasValid, offset, length)
	sliceOffsets := a.offsets[offset : offset+length+1]

	return NewMapArray(a.entriesField, a.keysSorted, sliceOffsets, a.entries, validity, hasV)
}
