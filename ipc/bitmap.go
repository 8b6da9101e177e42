package ipc

import (
	"io"

	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/internal/pool"
)

// WriteBitmap is the shared encoder for every validity bitmap a Writer
// emits. A missing validity bitmap is emitted as Buffer{offset,0} without
// touching the body. A byte-aligned bitmap is written directly; a
// non-aligned one is first repacked into a tight byte slice.
func WriteBitmap(body *pool.ByteBuffer, buffers *[]Buffer, offset *int64, bm arrowarray.Bitmap, hasValidity bool) error {
	if !hasValidity {
		*buffers = append(*buffers, Buffer{Offset: *offset, Length: 0})

		return nil
	}

	WriteRawBytes(body, buffers, offset, bm.Packed())

	return nil
}

// ReadBitmap implements the inverse BitmapCodec read contract: allocates
// ceil(length/8) bytes and wraps them with the given logical length. A
// zero-length buffer is interpreted as all-valid only when nullCount == 0;
// otherwise the stream is corrupt (the writer would not have omitted a
// bitmap that actually carries nulls).
func ReadBitmap(r io.ReaderAt, blockOffset int64, buf Buffer, length int, nullCount int64) (arrowarray.Bitmap, bool, error) {
	if buf.Length == 0 {
		if nullCount != 0 {
			return arrowarray.Bitmap{}, false, errCorruptZeroBitmapWithNulls(nullCount)
		}

		return arrowarray.Bitmap{}, false, nil
	}

	raw, err := ReadRawBytes(r, blockOffset, buf)
	if err != nil {
		return arrowarray.Bitmap{}, false, err
	}

	return arrowarray.NewBitmap(raw, 0, length), true, nil
}
