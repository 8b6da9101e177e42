// Package ipc implements the columnar IPC serializer/deserializer: a
// BufferCodec and BitmapCodec over a single typed buffer, and a
// Writer/Reader pair that recurse over arrowarray.Array values according
// to their physical type.
package ipc

import (
	"github.com/coldex-io/coldex/compress"
	"github.com/coldex-io/coldex/internal/pool"
)

// FieldNode is the {length, null_count} record emitted once per array in
// pre-order traversal.
type FieldNode struct {
	Length    int64
	NullCount int64
}

// Buffer is a {offset, length} descriptor into the record body, offset
// relative to the body's start.
type Buffer struct {
	Offset int64
	Length int64
}

// BodyCompressionMethod names the one supported framing method: the
// whole buffer is compressed as one block (no per-element chunking).
type BodyCompressionMethod uint8

const BodyCompressionBuffer BodyCompressionMethod = 0

// BodyCompression records which codec (if any) compresses every buffer in
// a record's body. Only LZ4 and Zstd are valid on the wire; None means
// the body is uncompressed.
type BodyCompression struct {
	Codec  compress.CompressionType
	Method BodyCompressionMethod
}

// Payload accumulates one IPC record's three parallel outputs: field
// nodes, the buffer table, and the body bytes. Writer.Write appends to
// all three in lock step. Body is a pooled ByteBuffer so repeated Write
// calls (and NewPayload/Release pairs) amortize allocation across
// records.
type Payload struct {
	Nodes   []FieldNode
	Buffers []Buffer
	Body    *pool.ByteBuffer
	offset  int64
}

// NewPayload returns a Payload with a fresh pooled body buffer.
func NewPayload() *Payload {
	return &Payload{Body: pool.GetRecordBuffer()}
}

// Release returns p's body buffer to the pool. p must not be used again.
func (p *Payload) Release() {
	pool.PutRecordBuffer(p.Body)
	p.Body = nil
}

// Reset empties p for reuse across multiple Writer.Write calls.
func (p *Payload) Reset() {
	p.Nodes = p.Nodes[:0]
	p.Buffers = p.Buffers[:0]
	p.Body.Reset()
	p.offset = 0
}
