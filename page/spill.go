package page

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/coldex-io/coldex/compress"
	"github.com/coldex-io/coldex/errs"
)

// SpillWriter persists DataPages to an out-of-band sink (disk, a shuffle
// file) compressed with S2, the one role compress.CompressionS2 plays in
// this module: the wire format of ipc.BodyCompression never selects it, so
// a caller spilling pages during a large chunked decode is its sole home.
type SpillWriter struct {
	w     io.Writer
	codec compress.Codec
}

func NewSpillWriter(w io.Writer) (*SpillWriter, error) {
	codec, err := compress.CreateCodec(compress.CompressionS2, "page-spill")
	if err != nil {
		return nil, err
	}

	return &SpillWriter{w: w, codec: codec}, nil
}

// WritePage appends one page's record: a varint header describing the
// page's descriptor and section lengths, then the raw rep/def level bytes
// followed by the S2-compressed value buffer.
func (sw *SpillWriter) WritePage(p *DataPage) error {
	compressed, err := sw.codec.Compress(p.Buffer)
	if err != nil {
		return err
	}

	header := []uint64{
		uint64(p.Encoding), uint64(p.Repetition), uint64(p.NumValues),
		uint64(p.MaxRepLevel), uint64(p.MaxDefLevel), uint64(p.DictionaryID),
		uint64(len(p.RepLevels)), uint64(len(p.DefLevels)),
		uint64(len(p.Buffer)), uint64(len(compressed)),
	}

	if err := writeUvarints(sw.w, header); err != nil {
		return err
	}

	for _, section := range [][]byte{p.RepLevels, p.DefLevels, compressed} {
		if len(section) == 0 {
			continue
		}

		if _, err := sw.w.Write(section); err != nil {
			return err
		}
	}

	return nil
}

func writeUvarints(w io.Writer, vals []uint64) error {
	var buf [binary.MaxVarintLen64]byte

	for _, v := range vals {
		n := binary.PutUvarint(buf[:], v)
		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}

	return nil
}

// SpillReader is the counterpart to SpillWriter, reading pages back in the
// order they were written.
type SpillReader struct {
	r     *bufio.Reader
	codec compress.Codec
}

func NewSpillReader(r io.Reader) (*SpillReader, error) {
	codec, err := compress.CreateCodec(compress.CompressionS2, "page-spill")
	if err != nil {
		return nil, err
	}

	return &SpillReader{r: bufio.NewReader(r), codec: codec}, nil
}

// ReadPage reads the next page, or returns (nil, nil) at a clean record
// boundary EOF.
func (sr *SpillReader) ReadPage() (*DataPage, error) {
	first, err := binary.ReadUvarint(sr.r)
	if err == io.EOF {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	header := make([]uint64, 10)
	header[0] = first

	for i := 1; i < len(header); i++ {
		v, err := binary.ReadUvarint(sr.r)
		if err != nil {
			return nil, errs.CorruptStream("spill record truncated mid-header: %v", err)
		}

		header[i] = v
	}

	repLevels := make([]byte, header[6])
	if _, err := io.ReadFull(sr.r, repLevels); err != nil {
		return nil, errs.CorruptStream("spill record truncated reading rep levels: %v", err)
	}

	defLevels := make([]byte, header[7])
	if _, err := io.ReadFull(sr.r, defLevels); err != nil {
		return nil, errs.CorruptStream("spill record truncated reading def levels: %v", err)
	}

	compressed := make([]byte, header[9])
	if _, err := io.ReadFull(sr.r, compressed); err != nil {
		return nil, errs.CorruptStream("spill record truncated reading value buffer: %v", err)
	}

	buf, err := sr.codec.Decompress(compressed)
	if err != nil {
		return nil, err
	}

	if uint64(len(buf)) != header[8] {
		return nil, errs.CorruptStream("spill page buffer length mismatch: got %d want %d", len(buf), header[8])
	}

	return &DataPage{
		Encoding:     Encoding(header[0]),
		Repetition:   Repetition(header[1]),
		Buffer:       buf,
		NumValues:    int(header[2]),
		MaxRepLevel:  int(header[3]),
		MaxDefLevel:  int(header[4]),
		RepLevels:    repLevels,
		DefLevels:    defLevels,
		DictionaryID: int(header[5]),
	}, nil
}
