package ipc

import (
	"github.com/coldex-io/coldex/compress"
	"github.com/coldex-io/coldex/endian"
	"github.com/coldex-io/coldex/internal/options"
)

// WriterConfig holds Writer's configurable knobs, set via WithEngine/
// WithCompression and the other With* functional options.
type WriterConfig struct {
	Engine   endian.EndianEngine
	Codec    compress.Codec
	CodecTy  compress.CompressionType
	Checksum bool
}

func newWriterConfig(opts ...options.Option[*WriterConfig]) (*WriterConfig, error) {
	cfg := &WriterConfig{Engine: endian.GetLittleEndianEngine(), CodecTy: compress.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithEngine selects the wire byte order (default little-endian).
func WithEngine(engine endian.EndianEngine) options.Option[*WriterConfig] {
	return options.NoError(func(c *WriterConfig) { c.Engine = engine })
}

// WithCompression selects the BodyCompression codec (default None).
func WithCompression(ty compress.CompressionType) options.Option[*WriterConfig] {
	return options.New(func(c *WriterConfig) error {
		if ty == compress.CompressionNone {
			c.CodecTy = ty
			c.Codec = nil

			return nil
		}

		codec, err := compress.CreateCodec(ty, "body compression")
		if err != nil {
			return err
		}

		c.CodecTy = ty
		c.Codec = codec

		return nil
	})
}

// WithBodyChecksum enables the optional xxHash64 body trailer.
func WithBodyChecksum(enabled bool) options.Option[*WriterConfig] {
	return options.NoError(func(c *WriterConfig) { c.Checksum = enabled })
}

// ReaderConfig mirrors WriterConfig for the read path: the engine and
// codec must match what the writer used to produce a decodable stream.
type ReaderConfig struct {
	Engine   endian.EndianEngine
	Codec    compress.Codec
	Checksum bool
}

func newReaderConfig(opts ...options.Option[*ReaderConfig]) (*ReaderConfig, error) {
	cfg := &ReaderConfig{Engine: endian.GetLittleEndianEngine()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithReaderEngine selects the wire byte order to decode with.
func WithReaderEngine(engine endian.EndianEngine) options.Option[*ReaderConfig] {
	return options.NoError(func(c *ReaderConfig) { c.Engine = engine })
}

// WithReaderCompression selects the BodyCompression codec used to decode
// buffers (must match what the writer used).
func WithReaderCompression(ty compress.CompressionType) options.Option[*ReaderConfig] {
	return options.New(func(c *ReaderConfig) error {
		if ty == compress.CompressionNone {
			c.Codec = nil

			return nil
		}

		codec, err := compress.CreateCodec(ty, "body compression")
		if err != nil {
			return err
		}

		c.Codec = codec

		return nil
	})
}

// WithReaderBodyChecksum enables xxHash64 body trailer verification.
func WithReaderBodyChecksum(enabled bool) options.Option[*ReaderConfig] {
	return options.NoError(func(c *ReaderConfig) { c.Checksum = enabled })
}
