package compress

import "fmt"

// CompressionType identifies a wire-level compression codec. The numeric
// values mirror the Arrow IPC BodyCompressionMethod/CompressionType enums
// (§6.2): only None, LZ4, and Zstd are valid inside a BodyCompression
// record; S2 is a coldex-local extension never emitted on the wire but
// usable by callers that persist decoded pages out of band.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionLZ4
	CompressionZstd
	CompressionS2
)

func (t CompressionType) String() string {
	switch t {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Compressor compresses a buffer in one shot.
//
// Implementations own their internal scratch space (pools, pooled
// encoders); callers own the input and the returned slice.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a buffer produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or invalid
	//   - Returns error if data was compressed with an incompatible algorithm
	Decompress(data []byte) ([]byte, error)
}

// Codec combines Compressor and Decompressor.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports the effect of a single compress/decompress call,
// useful for monitoring codec choice across IPC bodies.
type CompressionStats struct {
	Algorithm           CompressionType
	OriginalSize        int64
	CompressedSize      int64
	Ratio               float64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns CompressedSize / OriginalSize. Values below 1.0
// indicate successful compression.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec builds a fresh Codec for the given type. target names the
// caller for error messages (e.g. "body compression", "page spill").
func CreateCodec(t CompressionType, target string) (Codec, error) {
	switch t {
	case CompressionNone:
		return NewNoOpCompressor(), nil
	case CompressionLZ4:
		return NewLZ4Compressor(), nil
	case CompressionZstd:
		return NewZstdCompressor(), nil
	case CompressionS2:
		return NewS2Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, t)
	}
}

var builtinCodecs = map[CompressionType]Codec{
	CompressionNone: NewNoOpCompressor(),
	CompressionLZ4:  NewLZ4Compressor(),
	CompressionZstd: NewZstdCompressor(),
	CompressionS2:   NewS2Compressor(),
}

// GetCodec retrieves a shared, stateless Codec instance for t.
func GetCodec(t CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}
