// Package compress provides compression and decompression codecs for IPC
// body buffers and page chunks.
//
// # Overview
//
// A compressed buffer in the body is framed as described in §6.2:
//
//	le_i64(uncompressed_size) ‖ codec_payload
//
// The codec_payload itself is self-describing (an LZ4 frame carries its own
// content size and end marker; a Zstd frame likewise), so the outer
// uncompressed_size exists for callers that want to pre-size a destination
// buffer without inflating the payload first.
//
// Two codecs are valid inside an ipc.BodyCompression record: LZ4 and Zstd.
// S2 is carried as a third Codec implementation for callers spilling
// decoded pages to local disk, where wire compatibility doesn't apply and
// S2's speed/ratio tradeoff is preferable.
//
// # Algorithm selection
//
//	None  - encoded data is already incompressible (e.g. dictionary indices)
//	LZ4   - fast decompression, suited to hot-path record batches
//	Zstd  - best ratio, for archival or network-bandwidth-constrained paths
//	S2    - page-spill only, not valid inside BodyCompression
package compress
