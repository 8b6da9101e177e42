package ipc

import (
	"encoding/binary"
	"io"
	"unsafe"

	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/compress"
	"github.com/coldex-io/coldex/endian"
	"github.com/coldex-io/coldex/errs"
	"github.com/coldex-io/coldex/internal/pool"
)

// elemSize returns sizeof(T) via a zero-value unsafe.Sizeof, used to pick
// the endian-swap element width and to reinterpret []T as []byte.
func elemSize[T arrowarray.Number]() int {
	var zero T

	return int(unsafe.Sizeof(zero))
}

// asBytes reinterprets values as a byte slice without copying, avoiding
// an element-by-element copy for every buffer write.
func asBytes[T arrowarray.Number](values []T) []byte {
	if len(values) == 0 {
		return nil
	}

	size := elemSize[T]()
	ptr := (*byte)(unsafe.Pointer(&values[0]))

	return unsafe.Slice(ptr, len(values)*size)
}

// fromBytes reinterprets a byte slice as []T without copying. data's
// length must be a multiple of sizeof(T); callers (ReadBuffer) guarantee
// this from the buffer table's declared length.
func fromBytes[T arrowarray.Number](data []byte) []T {
	if len(data) == 0 {
		return nil
	}

	size := elemSize[T]()
	ptr := (*T)(unsafe.Pointer(&data[0]))

	return unsafe.Slice(ptr, len(data)/size)
}

func pad8(n int64) int64 {
	rem := n % 8
	if rem == 0 {
		return n
	}

	return n + (8 - rem)
}

// WriteBuffer is the shared encoder for every typed buffer a Writer
// emits: it remembers body's pre-write length, optionally compresses
// with a little-endian uncompressed-size prefix, otherwise memcpys
// (native endian) or byte-swaps element-wise, pads to an 8-byte
// boundary, and appends a Buffer{offset, length} descriptor (length
// excludes padding). Compression combined with a non-native engine is
// rejected with ErrNotYetImplemented.
func WriteBuffer[T arrowarray.Number](body *pool.ByteBuffer, buffers *[]Buffer, offset *int64, values []T, engine endian.EndianEngine, codec compress.Codec) error {
	if codec != nil && !endian.CompareNativeEndian(engine) {
		return errs.NotYetImplemented("compressed buffer with non-native byte order")
	}

	start := body.Len()
	raw := asBytes(values)

	var payloadLen int64

	if codec != nil {
		compressed, err := codec.Compress(raw)
		if err != nil {
			return errs.IO(err)
		}

		var prefix [8]byte
		binary.LittleEndian.PutUint64(prefix[:], uint64(len(raw)))

		body.ExtendOrGrow(8 + len(compressed))
		dst := body.Bytes()[start:]
		copy(dst, prefix[:])
		copy(dst[8:], compressed)

		payloadLen = int64(8 + len(compressed))
	} else if endian.CompareNativeEndian(engine) {
		body.ExtendOrGrow(len(raw))
		copy(body.Bytes()[start:], raw)
		payloadLen = int64(len(raw))
	} else {
		body.ExtendOrGrow(len(raw))
		dst := body.Bytes()[start:]
		copy(dst, raw)
		endian.SwapElements(dst, elemSize[T]())
		payloadLen = int64(len(raw))
	}

	padded := pad8(payloadLen)
	if padded > payloadLen {
		body.ExtendOrGrow(int(padded - payloadLen))
	}

	*buffers = append(*buffers, Buffer{Offset: *offset, Length: payloadLen})
	*offset += padded

	return nil
}

// ReadBuffer implements the inverse BufferCodec read contract: seeks to
// blockOffset+buf.Offset, reads buf.Length bytes, optionally strips the
// 8-byte uncompressed-length prefix and decompresses, then interprets the
// result as []T honoring engine. Padding bytes are never read.
func ReadBuffer[T arrowarray.Number](r io.ReaderAt, blockOffset int64, buf Buffer, engine endian.EndianEngine, codec compress.Codec, count int) ([]T, error) {
	if buf.Length == 0 {
		return nil, nil
	}

	raw := make([]byte, buf.Length)
	if _, err := r.ReadAt(raw, blockOffset+buf.Offset); err != nil {
		return nil, errs.IO(err)
	}

	var payload []byte

	if codec != nil {
		uncompressedSize := int64(binary.LittleEndian.Uint64(raw[:8]))

		decompressed, err := codec.Decompress(raw[8:])
		if err != nil {
			return nil, errs.IO(err)
		}

		if int64(len(decompressed)) != uncompressedSize {
			return nil, errs.CorruptStream("uncompressed size mismatch: declared %d, got %d", uncompressedSize, len(decompressed))
		}

		payload = decompressed
	} else {
		payload = raw
	}

	size := elemSize[T]()
	if len(payload) != count*size {
		return nil, errs.CorruptStream("buffer length %d does not match count*elemSize %d", len(payload), count*size)
	}

	if !endian.CompareNativeEndian(engine) {
		swapped := make([]byte, len(payload))
		copy(swapped, payload)
		endian.SwapElements(swapped, size)
		payload = swapped
	}

	out := make([]T, count)
	copy(out, fromBytes[T](payload))

	return out, nil
}

// WriteRawBytes writes an untyped buffer (e.g. Binary values, FixedSizeBinary
// values) through the same padding/offset bookkeeping as WriteBuffer, without
// compression framing or endian swap (the payload has no element width).
func WriteRawBytes(body *pool.ByteBuffer, buffers *[]Buffer, offset *int64, data []byte) {
	start := body.Len()
	body.ExtendOrGrow(len(data))
	copy(body.Bytes()[start:], data)

	padded := pad8(int64(len(data)))
	if padded > int64(len(data)) {
		body.ExtendOrGrow(int(padded - int64(len(data))))
	}

	*buffers = append(*buffers, Buffer{Offset: *offset, Length: int64(len(data))})
	*offset += padded
}

// ReadRawBytes is the inverse of WriteRawBytes.
func ReadRawBytes(r io.ReaderAt, blockOffset int64, buf Buffer) ([]byte, error) {
	if buf.Length == 0 {
		return nil, nil
	}

	raw := make([]byte, buf.Length)
	if _, err := r.ReadAt(raw, blockOffset+buf.Offset); err != nil {
		return nil, errs.IO(err)
	}

	return raw, nil
}
