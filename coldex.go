// Package coldex is the columnar in-memory analytics library core: an
// Arrow-style inter-process columnar IPC serializer/deserializer plus a
// Parquet-style page-format deserializer with nested repetition/
// definition-level shredding.
//
// # Core features
//
//   - Tagged DataType/Array model covering scalars, variable-length
//     binary/UTF-8, fixed-size binary, List/LargeList/FixedSizeList,
//     Struct, dense/sparse Union, Map and Dictionary
//   - IPC record serialization: FieldNode/Buffer descriptors, optional
//     LZ4-frame or ZSTD body compression, an optional xxHash64 body
//     checksum trailer, delta-append dictionary batches
//   - Parquet-style page decode: Plain and RLE/dictionary-indexed
//     values, hybrid-RLE repetition/definition levels, chunked pull
//     iteration across page boundaries
//   - Dremel-style nested reassembly of List/Struct columns back into
//     whole Arrow arrays
//
// # Basic usage
//
// Writing one array's worth of FieldNode/Buffer descriptors plus body
// bytes:
//
//	w, _ := coldex.NewWriter()
//	err := w.Write(arr, payload)
//
// Reading it back:
//
//	r, _ := coldex.NewReader()
//	arr, _ := r.Read(dt, &nodes, &buffers, body, 0, dicts)
//
// Decoding a Parquet-style column chunk:
//
//	dec := coldex.NewPageDecoder[int32](pages, 4096, nil)
//	for {
//	    chunk, err := dec.Next()
//	    if err != nil || chunk == nil {
//	        break
//	    }
//	}
//
// # Package structure
//
// This package provides convenient top-level wrappers around ipc and
// page. For advanced usage — custom WriterConfig/ReaderConfig options,
// direct buffer codec access, nested-state reassembly — use those
// packages directly.
package coldex

import (
	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/internal/options"
	"github.com/coldex-io/coldex/ipc"
	"github.com/coldex-io/coldex/page"
)

// NewWriter creates an IPC record writer with the given options (see
// ipc.WithEngine, ipc.WithCompression, ipc.WithBodyChecksum).
func NewWriter(opts ...options.Option[*ipc.WriterConfig]) (*ipc.Writer, error) {
	return ipc.NewWriter(opts...)
}

// NewReader creates an IPC record reader with the given options (see
// ipc.WithReaderEngine, ipc.WithReaderCompression, ipc.WithReaderBodyChecksum).
func NewReader(opts ...options.Option[*ipc.ReaderConfig]) (*ipc.Reader, error) {
	return ipc.NewReader(opts...)
}

// NewPageDecoder creates a pull-based page.Decoder over pages, producing
// chunkSize-sized value/validity chunks. dicts resolves dictionary ids
// for RLE/dictionary-encoded pages; pass nil when none are used.
func NewPageDecoder[T arrowarray.Number](pages page.Pages, chunkSize int, dicts map[int]page.PrimitiveDictionary[T]) *page.Decoder[T] {
	return page.NewDecoder[T](pages, chunkSize, dicts)
}
