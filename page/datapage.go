// Package page implements a Parquet-style page-format deserializer: a
// pull-based Decoder over plain and RLE-dictionary encoded pages, and
// Dremel-style nested reassembly (ExtendOffsets, FinishArray) that turns
// repetition/definition level streams back into nested arrays.
package page

import "github.com/coldex-io/coldex/arrowarray"

// Encoding tags how a DataPage's value buffer is laid out.
type Encoding uint8

const (
	EncodingPlain Encoding = iota
	EncodingRLE
	EncodingPlainDictionary
)

func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "plain"
	case EncodingRLE:
		return "rle"
	case EncodingPlainDictionary:
		return "plain_dictionary"
	default:
		return "unknown"
	}
}

// Repetition tags a page's column descriptor repetition kind.
type Repetition uint8

const (
	Required Repetition = iota
	Optional
	Repeated
)

// DataPage is one page's worth of encoded values plus its descriptor: an
// encoding tag, the raw value buffer, the value count, and the max
// repetition/definition levels that drive both Decoder (leaf values)
// and ExtendOffsets (shredding).
type DataPage struct {
	Encoding     Encoding
	Repetition   Repetition
	Buffer       []byte
	NumValues    int
	MaxRepLevel  int
	MaxDefLevel  int
	RepLevels    []byte // hybrid-RLE encoded, present when MaxRepLevel > 0
	DefLevels    []byte // hybrid-RLE encoded, present when Repetition != Required
	DictionaryID int    // valid when Encoding is RLE/PlainDictionary
}

// Dictionary resolves an index into a page's dictionary page. Primitive
// and binary dictionaries are the two concrete shapes; Decoder resolves
// only PrimitiveDictionary.
type Dictionary interface {
	Len() int
}

// PrimitiveDictionary backs RequiredDictionary/OptionalDictionary states
// over a fixed-width scalar dictionary page.
type PrimitiveDictionary[T arrowarray.Number] struct {
	Values []T
}

func (d PrimitiveDictionary[T]) Len() int    { return len(d.Values) }
func (d PrimitiveDictionary[T]) At(i int) T { return d.Values[i] }

// BinaryDictionary backs dictionary-encoded Binary/Utf8 pages: offsets
// delineate each dictionary entry's span into values.
type BinaryDictionary struct {
	Offsets []int32
	Values  []byte
}

func (d BinaryDictionary) Len() int        { return len(d.Offsets) - 1 }
func (d BinaryDictionary) At(i int) []byte { return d.Values[d.Offsets[i]:d.Offsets[i+1]] }

// Pages is the pull source PageDecoder consumes. Next returns (nil, nil)
// once exhausted; it is the only collaborator in this package allowed to
// block on I/O.
type Pages interface {
	Next() (*DataPage, error)
}

// SlicePages adapts a pre-materialized []*DataPage (e.g. from a test, or a
// fully-buffered column chunk) into a Pages source.
type SlicePages struct {
	pages []*DataPage
	pos   int
}

func NewSlicePages(pages []*DataPage) *SlicePages {
	return &SlicePages{pages: pages}
}

func (s *SlicePages) Next() (*DataPage, error) {
	if s.pos >= len(s.pages) {
		return nil, nil
	}

	p := s.pages[s.pos]
	s.pos++

	return p, nil
}
