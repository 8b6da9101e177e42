package compress

import (
	"bytes"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4WriterPool pools lz4.Writer instances (frame format) for reuse.
var lz4WriterPool = sync.Pool{
	New: func() any { return lz4.NewWriter(nil) },
}

// lz4ReaderPool pools lz4.Reader instances (frame format) for reuse.
var lz4ReaderPool = sync.Pool{
	New: func() any { return lz4.NewReader(nil) },
}

// LZ4Compressor implements the "LZ4 frame" codec named by §6.2: a
// self-describing frame (content size, block checksums, end mark) rather
// than pierrec's bare block API, so a lone compressed buffer is decodable
// without an externally carried uncompressed length.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 frame compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into an LZ4 frame.
//
// Returns:
//   - []byte: Compressed frame (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var dst bytes.Buffer
	dst.Grow(len(data))

	w, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(w)

	w.Reset(&dst)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return dst.Bytes(), nil
}

// Decompress decompresses an LZ4 frame produced by Compress.
//
// Parameters:
//   - data: Compressed frame to decompress
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: Decompression error if the frame is malformed
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, _ := lz4ReaderPool.Get().(*lz4.Reader)
	defer lz4ReaderPool.Put(r)

	r.Reset(bytes.NewReader(data))

	var out bytes.Buffer
	out.Grow(len(data) * 3)
	if _, err := out.ReadFrom(r); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
