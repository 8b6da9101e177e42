package page

import (
	"encoding/binary"
	"math/bits"

	"github.com/coldex-io/coldex/errs"
)

// LevelBitWidth returns ceil(log2(maxLevel+1)), the bit width assigned to
// a repetition/definition level stream (or a dictionary index stream,
// sized off the dictionary length instead of a level).
func LevelBitWidth(maxLevel int) int {
	if maxLevel <= 0 {
		return 0
	}

	return bits.Len(uint(maxLevel))
}

// LevelDecoder decodes a hybrid-RLE encoded stream of unsigned integers:
// each run starts with a ULEB128 header whose low bit
// selects an RLE run (a single repeated value) or a bit-packed run (groups
// of 8 values packed at bitWidth bits each). count bounds the total values
// produced, since a bit-packed run's final group may pad with zeros past
// the last real value.
type LevelDecoder struct {
	data     []byte
	bitWidth int
	pos      int
	produced int
	count    int

	runRemaining int
	runIsPacked  bool
	runValue     uint32
	packed       []uint32
	packedIdx    int
}

// NewLevelDecoder constructs a decoder over data, set to produce exactly
// count values at bitWidth bits each. bitWidth == 0 means every level is
// implicitly 0 (e.g. a page with MaxDefLevel == 0) and data is not read.
func NewLevelDecoder(data []byte, bitWidth, count int) *LevelDecoder {
	return &LevelDecoder{data: data, bitWidth: bitWidth, count: count}
}

// Next returns the next decoded value, or ok=false once count values have
// been produced.
func (d *LevelDecoder) Next() (uint32, bool, error) {
	if d.produced >= d.count {
		return 0, false, nil
	}

	if d.bitWidth == 0 {
		d.produced++

		return 0, true, nil
	}

	for d.runRemaining == 0 && d.packedIdx >= len(d.packed) {
		if err := d.nextRun(); err != nil {
			return 0, false, err
		}
	}

	d.produced++

	if d.runIsPacked {
		v := d.packed[d.packedIdx]
		d.packedIdx++

		return v, true, nil
	}

	d.runRemaining--

	return d.runValue, true, nil
}

func (d *LevelDecoder) nextRun() error {
	if d.pos >= len(d.data) {
		return errs.CorruptStream("hybrid-RLE stream exhausted with %d values still expected", d.count-d.produced)
	}

	header, n := binary.Uvarint(d.data[d.pos:])
	if n <= 0 {
		return errs.CorruptStream("malformed hybrid-RLE run header")
	}

	d.pos += n

	byteWidth := (d.bitWidth + 7) / 8

	if header&1 == 0 {
		runLength := int(header >> 1)
		if d.pos+byteWidth > len(d.data) {
			return errs.CorruptStream("hybrid-RLE RLE run truncated")
		}

		var buf [4]byte
		copy(buf[:], d.data[d.pos:d.pos+byteWidth])
		d.pos += byteWidth

		d.runIsPacked = false
		d.runRemaining = runLength
		d.runValue = binary.LittleEndian.Uint32(buf[:])

		return nil
	}

	numGroups := int(header >> 1)
	groupBytes := numGroups * d.bitWidth
	if d.pos+groupBytes > len(d.data) {
		return errs.CorruptStream("hybrid-RLE bit-packed run truncated")
	}

	packed := unpackBitWidth(d.data[d.pos:d.pos+groupBytes], d.bitWidth, numGroups*8)
	d.pos += groupBytes

	d.runIsPacked = true
	d.packed = packed
	d.packedIdx = 0

	return nil
}

// unpackBitWidth unpacks n values of bitWidth bits each from data, LSB
// first within each byte, the same layout Parquet's bit-packing uses.
func unpackBitWidth(data []byte, bitWidth, n int) []uint32 {
	out := make([]uint32, n)

	bitPos := 0
	for i := 0; i < n; i++ {
		var v uint32

		for b := 0; b < bitWidth; b++ {
			bytePos := bitPos / 8
			bitInByte := bitPos % 8

			if bytePos < len(data) && data[bytePos]&(1<<uint(bitInByte)) != 0 {
				v |= 1 << uint(b)
			}

			bitPos++
		}

		out[i] = v
	}

	return out
}
