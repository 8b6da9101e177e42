package compress

// ZstdCompressor implements the ZSTD codec named by §6.2, used for IPC
// body compression where compression ratio matters more than speed. The actual implementation is chosen at build
// time: zstd_cgo.go (cgo, via valyala/gozstd) when cgo is enabled,
// zstd_pure.go (pure Go, via klauspost/compress/zstd) otherwise.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
