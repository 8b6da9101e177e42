package ipc

import (
	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/errs"
)

// Dictionaries is the per-stream {id -> Array} table that resolves
// dictionary-typed columns back to their values. A Dictionaries value
// owns no resources beyond the Arrays it holds, so it needs no explicit
// Close; it lives for as long as the stream that registered its entries.
type Dictionaries struct {
	values map[uint64]arrowarray.Array
}

// NewDictionaries returns an empty dictionary table.
func NewDictionaries() *Dictionaries {
	return &Dictionaries{values: make(map[uint64]arrowarray.Array)}
}

// Get resolves id, returning errs.ErrMissingDictionary if unregistered.
func (d *Dictionaries) Get(id uint64) (arrowarray.Array, error) {
	a, ok := d.values[id]
	if !ok {
		return nil, errs.MissingDictionary(id)
	}

	return a, nil
}

// Put registers or replaces (isDelta=false) / appends to (isDelta=true)
// the dictionary values under id.
func (d *Dictionaries) Put(id uint64, values arrowarray.Array, isDelta bool) error {
	if !isDelta {
		d.values[id] = values

		return nil
	}

	existing, ok := d.values[id]
	if !ok {
		d.values[id] = values

		return nil
	}

	merged, err := Concat(existing, values)
	if err != nil {
		return err
	}

	d.values[id] = merged

	return nil
}

// Concat appends b's rows after a's, producing a new Array of the same
// concrete type. Only the variants a dictionary's values commonly take
// (Primitive, Binary/Utf8) are supported; anything else is
// errs.ErrNotYetImplemented, distinguishing an unimplemented combination
// from a genuinely invalid one.
func Concat(a, b arrowarray.Array) (arrowarray.Array, error) {
	switch av := a.(type) {
	case arrowarray.PrimitiveArray[int8]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[int8])), nil
	case arrowarray.PrimitiveArray[int16]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[int16])), nil
	case arrowarray.PrimitiveArray[int32]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[int32])), nil
	case arrowarray.PrimitiveArray[int64]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[int64])), nil
	case arrowarray.PrimitiveArray[uint8]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[uint8])), nil
	case arrowarray.PrimitiveArray[uint16]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[uint16])), nil
	case arrowarray.PrimitiveArray[uint32]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[uint32])), nil
	case arrowarray.PrimitiveArray[uint64]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[uint64])), nil
	case arrowarray.PrimitiveArray[float32]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[float32])), nil
	case arrowarray.PrimitiveArray[float64]:
		return concatPrimitive(av, b.(arrowarray.PrimitiveArray[float64])), nil
	case arrowarray.BinaryArray[int32]:
		return concatBinary(av, b.(arrowarray.BinaryArray[int32])), nil
	case arrowarray.BinaryArray[int64]:
		return concatBinary(av, b.(arrowarray.BinaryArray[int64])), nil
	default:
		return nil, errs.NotYetImplemented("dictionary delta concatenation for %T", a)
	}
}

func concatPrimitive[T arrowarray.Number](a, b arrowarray.PrimitiveArray[T]) arrowarray.PrimitiveArray[T] {
	values := make([]T, 0, a.Len()+b.Len())
	values = append(values, a.Values()...)
	values = append(values, b.Values()...)

	return arrowarray.NewPrimitiveArray(a.DataType(), values, arrowarray.Bitmap{}, false)
}

func concatBinary[O arrowarray.Offset](a, b arrowarray.BinaryArray[O]) arrowarray.BinaryArray[O] {
	values := make([]byte, 0, len(a.Values())+len(b.Values()))
	values = append(values, a.Values()...)
	values = append(values, b.Values()...)

	offsets := make([]O, 0, a.Len()+b.Len()+1)
	offsets = append(offsets, a.Offsets()...)

	base := a.Offsets()[len(a.Offsets())-1]
	for _, off := range b.Offsets()[1:] {
		offsets = append(offsets, off+base)
	}

	large := a.DataType().Kind().String() == "large_binary" || a.DataType().Kind().String() == "large_utf8"
	utf8 := a.DataType().Kind().String() == "utf8" || a.DataType().Kind().String() == "large_utf8"

	return arrowarray.NewBinaryArray(offsets, values, arrowarray.Bitmap{}, false, large, utf8)
}
