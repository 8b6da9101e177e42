package page

import (
	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/arrowtype"
	"github.com/coldex-io/coldex/errs"
)

// FinishArray wraps a decoded leaf array back up through its nesting
// layers: layers holds the List/LargeList/Struct data types from
// outermost to innermost, one per non-leaf entry of items, and items is
// the NestedState.Items slice ExtendOffsets produced alongside it.
//
// A Struct layer here wraps only this column's own continuation: merging
// sibling leaf columns that share a struct ancestor is left to the caller,
// which combines several FinishArray results using their common
// NestedStruct validity.
func FinishArray(layers []arrowtype.DataType, items []Nested, leaf arrowarray.Array) (arrowarray.Array, error) {
	if len(layers) != len(items)-1 {
		return nil, errs.CorruptStream("nested layer count %d does not match item count %d", len(layers), len(items))
	}

	current := leaf

	for depth := len(layers) - 1; depth >= 0; depth-- {
		next, err := wrapLayer(layers[depth], items[depth], current)
		if err != nil {
			return nil, err
		}

		current = next
	}

	return current, nil
}

func wrapLayer(dt arrowtype.DataType, nest Nested, child arrowarray.Array) (arrowarray.Array, error) {
	switch dt.Kind() {
	case arrowtype.KindList:
		opt, ok := nest.(*NestedOptional)
		if ok {
			validity := arrowarray.NewBitmapFromValidity(opt.Validity)
			offsets := int64sToInt32(closeOffsets(opt.Offsets, child.Len()))
			return arrowarray.NewListArray(dt.Fields()[0], offsets, child, validity, true, false), nil
		}

		valid, ok := nest.(*NestedValid)
		if !ok {
			return nil, errs.CorruptStream("List layer paired with unexpected nested state %T", nest)
		}

		offsets := int64sToInt32(closeOffsets(valid.Offsets, child.Len()))

		return arrowarray.NewListArray(dt.Fields()[0], offsets, child, arrowarray.Bitmap{}, false, false), nil

	case arrowtype.KindLargeList:
		opt, ok := nest.(*NestedOptional)
		if ok {
			validity := arrowarray.NewBitmapFromValidity(opt.Validity)
			return arrowarray.NewListArray(dt.Fields()[0], closeOffsets(opt.Offsets, child.Len()), child, validity, true, true), nil
		}

		valid, ok := nest.(*NestedValid)
		if !ok {
			return nil, errs.CorruptStream("LargeList layer paired with unexpected nested state %T", nest)
		}

		return arrowarray.NewListArray(dt.Fields()[0], closeOffsets(valid.Offsets, child.Len()), child, arrowarray.Bitmap{}, false, true), nil

	case arrowtype.KindStruct:
		fields := dt.Fields()
		if len(fields) != 1 {
			return nil, errs.NotYetImplemented("FinishArray struct layer with %d fields (only single-column continuation is supported)", len(fields))
		}

		switch s := nest.(type) {
		case *NestedStruct:
			validity := arrowarray.NewBitmapFromValidity(s.Validity)
			return arrowarray.NewStructArray(fields, []arrowarray.Array{child}, len(s.Validity), validity, true), nil
		case *NestedStructValid:
			return arrowarray.NewStructArray(fields, []arrowarray.Array{child}, s.Len(), arrowarray.Bitmap{}, false), nil
		default:
			return nil, errs.CorruptStream("Struct layer paired with unexpected nested state %T", nest)
		}

	default:
		return nil, errs.NotYetImplemented("FinishArray layer kind %s", dt.Kind())
	}
}

// closeOffsets appends the trailing end-offset Arrow's offsets.len() ==
// len()+1 convention requires: Nested.Push only records each row's start
// position, so the final row's end is the child array's total length.
func closeOffsets(starts []int64, childLen int) []int64 {
	return append(append([]int64(nil), starts...), int64(childLen))
}

func int64sToInt32(in []int64) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}

	return out
}
