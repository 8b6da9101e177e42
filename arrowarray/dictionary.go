package arrowarray

import "github.com/coldex-io/coldex/arrowtype"

// DictionaryArray pairs an index array (the physical, on-wire column)
// with a values array resolved out-of-band via an id, looked up through
// an ipc.Dictionaries table at materialization time. Every key must be in
// [0, values.Len()) or null; that invariant is enforced by the reader at
// materialization, not re-checked here.
type DictionaryArray struct {
	keyType Primitive
	values  Array
	ordered bool
	dictID  uint64
	keys    PrimitiveArray[int64] // keys widened to int64 regardless of wire key width
}

// Primitive re-exports arrowtype.Primitive for dictionary key typing
// without importing arrowtype at every call site.
type Primitive = arrowtype.Primitive

var _ Array = DictionaryArray{}

func NewDictionaryArray(keyType Primitive, keys PrimitiveArray[int64], values Array, ordered bool, dictID uint64) DictionaryArray {
	return DictionaryArray{keyType: keyType, keys: keys, values: values, ordered: ordered, dictID: dictID}
}

func (a DictionaryArray) Len() int                { return a.keys.Len() }
func (a DictionaryArray) NullCount() int           { return a.keys.NullCount() }
func (a DictionaryArray) Validity() (Bitmap, bool) { return a.keys.Validity() }

func (a DictionaryArray) DataType() arrowtype.DataType {
	return arrowtype.NewDictionary(a.keyType, a.values.DataType(), a.ordered, a.dictID)
}

func (a DictionaryArray) Keys() PrimitiveArray[int64] { return a.keys }
func (a DictionaryArray) DictValues() Array            { return a.values }
func (a DictionaryArray) DictID() uint64               { return a.dictID }

func (a DictionaryArray) Slice(offset, length int) Array {
	return NewDictionaryArray(a.keyType, a.keys.Slice(offset, length).(PrimitiveArray[int64]), a.values, a.ordered, a.dictID)
}
