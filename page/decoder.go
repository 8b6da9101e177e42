package page

import (
	"bytes"

	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/endian"
	"github.com/coldex-io/coldex/errs"
	"github.com/coldex-io/coldex/ipc"
)

// Chunk is one pull-decoded slab of leaf values. Validity is nil when the
// source page(s) contributing to this chunk were all Required (no null
// slots); otherwise it has the same length as Values.
type Chunk[T arrowarray.Number] struct {
	Values   []T
	Validity []bool
}

// Decoder is a pull-based page decoder: it translates each DataPage into
// a (definition levels, resolved values) pair up front, then serves
// Next() in chunkSize-bounded slabs, carrying a page's tail over to the
// next Next() call when a page's value count doesn't divide evenly.
type Decoder[T arrowarray.Number] struct {
	pages     Pages
	chunkSize int
	dicts     map[int]PrimitiveDictionary[T]

	cur *decodedPage[T]

	pending         []T
	pendingValidity []bool
}

// NewDecoder constructs a Decoder over pages, yielding chunks of at most
// chunkSize values. dicts resolves a DataPage.DictionaryID for
// RequiredDictionary/OptionalDictionary pages; pass nil if the column
// never uses dictionary encoding.
func NewDecoder[T arrowarray.Number](pages Pages, chunkSize int, dicts map[int]PrimitiveDictionary[T]) *Decoder[T] {
	return &Decoder[T]{pages: pages, chunkSize: chunkSize, dicts: dicts}
}

// decodedPage holds one page's leaf values fully resolved (dictionary
// indices already looked up), plus an optional parallel definition-level
// derived validity. This trades page-sized memory for a uniform extend
// loop shared by all four (encoding, repetition) decode states.
type decodedPage[T arrowarray.Number] struct {
	values   []T
	validity []bool // nil when Required
	pos      int
}

func (p *decodedPage[T]) exhausted() bool { return p.pos >= len(p.values) }

func (p *decodedPage[T]) extend(dstValues *[]T, dstValidity *[]bool, need int) int {
	take := len(p.values) - p.pos
	if take > need {
		take = need
	}

	if p.validity != nil && *dstValidity == nil {
		*dstValidity = make([]bool, len(*dstValues))
		for i := range *dstValidity {
			(*dstValidity)[i] = true
		}
	}

	*dstValues = append(*dstValues, p.values[p.pos:p.pos+take]...)

	if *dstValidity != nil {
		if p.validity != nil {
			*dstValidity = append(*dstValidity, p.validity[p.pos:p.pos+take]...)
		} else {
			for i := 0; i < take; i++ {
				*dstValidity = append(*dstValidity, true)
			}
		}
	}

	p.pos += take

	return take
}

// Next returns the next chunk of at most chunkSize values, or (nil, nil)
// once every page has been consumed and no partial chunk remains.
func (d *Decoder[T]) Next() (*Chunk[T], error) {
	for len(d.pending) < d.chunkSize {
		if d.cur == nil || d.cur.exhausted() {
			raw, err := d.pages.Next()
			if err != nil {
				return nil, err
			}

			if raw == nil {
				break
			}

			dp, err := d.translate(raw)
			if err != nil {
				return nil, err
			}

			d.cur = dp
		}

		if d.cur.exhausted() {
			continue
		}

		d.cur.extend(&d.pending, &d.pendingValidity, d.chunkSize-len(d.pending))
	}

	if len(d.pending) == 0 {
		return nil, nil
	}

	chunk := &Chunk[T]{Values: d.pending, Validity: d.pendingValidity}
	d.pending = nil
	d.pendingValidity = nil

	return chunk, nil
}

// translate dispatches on (encoding, repetition) and fully resolves the
// page into a values/validity pair.
func (d *Decoder[T]) translate(p *DataPage) (*decodedPage[T], error) {
	switch {
	case p.Encoding == EncodingPlain && p.Repetition == Required:
		values, err := decodePlainValues[T](p.Buffer, p.NumValues)
		if err != nil {
			return nil, err
		}

		return &decodedPage[T]{values: values}, nil

	case p.Encoding == EncodingPlain && p.Repetition == Optional:
		defs, numPresent, err := decodeDefLevels(p)
		if err != nil {
			return nil, err
		}

		present, err := decodePlainValues[T](p.Buffer, numPresent)
		if err != nil {
			return nil, err
		}

		return expandOptional(defs, uint32(p.MaxDefLevel), present), nil

	case (p.Encoding == EncodingRLE || p.Encoding == EncodingPlainDictionary) && p.Repetition == Required:
		dict, ok := d.dicts[p.DictionaryID]
		if !ok {
			return nil, errs.MissingDictionary(uint64(p.DictionaryID))
		}

		indices, err := decodeIndices(p.Buffer, dict.Len(), p.NumValues)
		if err != nil {
			return nil, err
		}

		values, err := resolveIndices(dict, indices)
		if err != nil {
			return nil, err
		}

		return &decodedPage[T]{values: values}, nil

	case (p.Encoding == EncodingRLE || p.Encoding == EncodingPlainDictionary) && p.Repetition == Optional:
		dict, ok := d.dicts[p.DictionaryID]
		if !ok {
			return nil, errs.MissingDictionary(uint64(p.DictionaryID))
		}

		defs, numPresent, err := decodeDefLevels(p)
		if err != nil {
			return nil, err
		}

		indices, err := decodeIndices(p.Buffer, dict.Len(), numPresent)
		if err != nil {
			return nil, err
		}

		present, err := resolveIndices(dict, indices)
		if err != nil {
			return nil, err
		}

		return expandOptional(defs, uint32(p.MaxDefLevel), present), nil

	default:
		return nil, errs.NotYetImplemented("page decode for encoding %s, repetition %d", p.Encoding, p.Repetition)
	}
}

func decodePlainValues[T arrowarray.Number](buf []byte, count int) ([]T, error) {
	if count == 0 {
		return nil, nil
	}

	r := bytes.NewReader(buf)

	return ipc.ReadBuffer[T](r, 0, ipc.Buffer{Offset: 0, Length: int64(len(buf))}, endian.GetLittleEndianEngine(), nil, count)
}

func decodeDefLevels(p *DataPage) (defs []uint32, numPresent int, err error) {
	bitWidth := LevelBitWidth(p.MaxDefLevel)
	dec := NewLevelDecoder(p.DefLevels, bitWidth, p.NumValues)

	defs = make([]uint32, p.NumValues)
	for i := range defs {
		v, ok, err := dec.Next()
		if err != nil {
			return nil, 0, err
		}

		if !ok {
			return nil, 0, errs.CorruptStream("definition level stream shorter than num_values")
		}

		defs[i] = v
		if v == uint32(p.MaxDefLevel) {
			numPresent++
		}
	}

	return defs, numPresent, nil
}

func decodeIndices(buf []byte, dictLen, count int) ([]uint32, error) {
	bitWidth := LevelBitWidth(dictLen - 1)
	dec := NewLevelDecoder(buf, bitWidth, count)

	indices := make([]uint32, count)
	for i := range indices {
		v, ok, err := dec.Next()
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, errs.CorruptStream("dictionary index stream shorter than expected")
		}

		indices[i] = v
	}

	return indices, nil
}

func resolveIndices[T arrowarray.Number](dict PrimitiveDictionary[T], indices []uint32) ([]T, error) {
	out := make([]T, len(indices))
	for i, idx := range indices {
		if int(idx) >= dict.Len() {
			return nil, errs.CorruptStream("dictionary index %d out of range (dict len %d)", idx, dict.Len())
		}

		out[i] = dict.At(int(idx))
	}

	return out, nil
}

// expandOptional interleaves present values back into a full-length
// values/validity pair, placing the zero value of T at every null slot.
func expandOptional[T arrowarray.Number](defs []uint32, maxDef uint32, present []T) *decodedPage[T] {
	values := make([]T, len(defs))
	validity := make([]bool, len(defs))

	pos := 0
	for i, d := range defs {
		if d == maxDef {
			values[i] = present[pos]
			validity[i] = true
			pos++
		}
	}

	return &decodedPage[T]{values: values, validity: validity}
}
