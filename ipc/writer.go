package ipc

import (
	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/arrowtype"
	"github.com/coldex-io/coldex/errs"
	"github.com/coldex-io/coldex/internal/options"
)

// Writer recursively walks an arrowarray.Array and emits field-node
// records, buffer-table records, and body bytes.
type Writer struct {
	cfg *WriterConfig
}

// NewWriter builds a Writer configured by opts (default: little-endian,
// no compression, no checksum).
func NewWriter(opts ...options.Option[*WriterConfig]) (*Writer, error) {
	cfg, err := newWriterConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Writer{cfg: cfg}, nil
}

// Write appends a's field node(s), buffer(s), and body bytes to out,
// dispatching on a.DataType().Kind(). Dictionary arrays write only their
// validity+keys inline; the values table is written separately via
// WriteDictionaryBatch.
func (w *Writer) Write(a arrowarray.Array, out *Payload) error {
	return w.write(a, out)
}

// Finish returns the checksum of out's accumulated body when
// WithBodyChecksum was enabled; ok is false otherwise, and checksum is
// not meaningful. Call once per record, after all of its Write calls.
func (w *Writer) Finish(out *Payload) (checksum uint64, ok bool) {
	if !w.cfg.Checksum {
		return 0, false
	}

	return BodyChecksum(out.Body.Bytes()), true
}

func (w *Writer) write(a arrowarray.Array, out *Payload) error {
	out.Nodes = append(out.Nodes, FieldNode{Length: int64(a.Len()), NullCount: int64(a.NullCount())})

	dt := a.DataType()

	switch dt.Kind() {
	case arrowtype.KindNull:
		return nil

	case arrowtype.KindBoolean:
		ba := a.(arrowarray.BooleanArray)
		validity, hasV := ba.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		return WriteBitmap(out.Body, &out.Buffers, &out.offset, ba.Values(), true)

	case arrowtype.KindPrimitive:
		return w.writePrimitive(a, dt.Primitive(), out)

	case arrowtype.KindBinary, arrowtype.KindUtf8:
		ba := a.(arrowarray.BinaryArray[int32])
		validity, hasV := ba.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		normOffsets, base, lastLen := normalizeOffsets(ba.Offsets())
		if err := WriteBuffer(out.Body, &out.Buffers, &out.offset, normOffsets, w.cfg.Engine, w.cfg.Codec); err != nil {
			return err
		}

		values := ba.Values()[base : base+lastLen]
		WriteRawBytes(out.Body, &out.Buffers, &out.offset, values)

		return nil

	case arrowtype.KindLargeBinary, arrowtype.KindLargeUtf8:
		ba := a.(arrowarray.BinaryArray[int64])
		validity, hasV := ba.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		normOffsets, base, lastLen := normalizeOffsets(ba.Offsets())
		if err := WriteBuffer(out.Body, &out.Buffers, &out.offset, normOffsets, w.cfg.Engine, w.cfg.Codec); err != nil {
			return err
		}

		values := ba.Values()[base : base+lastLen]
		WriteRawBytes(out.Body, &out.Buffers, &out.offset, values)

		return nil

	case arrowtype.KindFixedSizeBinary:
		fa := a.(arrowarray.FixedSizeBinaryArray)
		validity, hasV := fa.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		WriteRawBytes(out.Body, &out.Buffers, &out.offset, fa.Values())

		return nil

	case arrowtype.KindList:
		la := a.(arrowarray.ListArray[int32])
		validity, hasV := la.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		normOffsets, base, lastLen := normalizeOffsets(la.Offsets())
		if err := WriteBuffer(out.Body, &out.Buffers, &out.offset, normOffsets, w.cfg.Engine, w.cfg.Codec); err != nil {
			return err
		}

		return w.write(la.Child().Slice(int(base), int(lastLen)), out)

	case arrowtype.KindLargeList:
		la := a.(arrowarray.ListArray[int64])
		validity, hasV := la.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		normOffsets, base, lastLen := normalizeOffsets(la.Offsets())
		if err := WriteBuffer(out.Body, &out.Buffers, &out.offset, normOffsets, w.cfg.Engine, w.cfg.Codec); err != nil {
			return err
		}

		return w.write(la.Child().Slice(int(base), int(lastLen)), out)

	case arrowtype.KindFixedSizeList:
		fa := a.(arrowarray.FixedSizeListArray)
		validity, hasV := fa.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		return w.write(fa.Child(), out)

	case arrowtype.KindStruct:
		sa := a.(arrowarray.StructArray)
		validity, hasV := sa.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		for _, child := range sa.Children() {
			if err := w.write(child, out); err != nil {
				return err
			}
		}

		return nil

	case arrowtype.KindMap:
		ma := a.(arrowarray.MapArray)
		validity, hasV := ma.Validity()
		if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
			return err
		}

		normOffsets, base, lastLen := normalizeOffsets(ma.Offsets())
		if err := WriteBuffer(out.Body, &out.Buffers, &out.offset, normOffsets, w.cfg.Engine, w.cfg.Codec); err != nil {
			return err
		}

		return w.write(ma.Entries().Slice(int(base), int(lastLen)), out)

	case arrowtype.KindUnion:
		return w.writeUnion(a.(arrowarray.UnionArray), out)

	case arrowtype.KindDictionary:
		return w.writeDictionary(a.(arrowarray.DictionaryArray), out)

	default:
		return errs.NotYetImplemented("write for physical kind %s", dt.Kind())
	}
}

func (w *Writer) writePrimitive(a arrowarray.Array, p arrowtype.Primitive, out *Payload) error {
	validity, hasV := a.Validity()
	if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
		return err
	}

	switch p {
	case arrowtype.I8:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[int8]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.I16:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[int16]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.I32, arrowtype.Days32, arrowtype.Month12:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[int32]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.I64, arrowtype.Ms64, arrowtype.Ns64:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[int64]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.U8:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[uint8]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.U16:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[uint16]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.U32:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[uint32]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.U64:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[uint64]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.F32:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[float32]).Values(), w.cfg.Engine, w.cfg.Codec)
	case arrowtype.F64:
		return WriteBuffer(out.Body, &out.Buffers, &out.offset, a.(arrowarray.PrimitiveArray[float64]).Values(), w.cfg.Engine, w.cfg.Codec)
	default:
		return errs.NotYetImplemented("write for primitive %s", p)
	}
}

func (w *Writer) writeUnion(ua arrowarray.UnionArray, out *Payload) error {
	WriteRawBytes(out.Body, &out.Buffers, &out.offset, int8sToBytes(ua.RowTypes()))

	if ua.Mode() == arrowtype.UnionDense {
		if err := WriteBuffer(out.Body, &out.Buffers, &out.offset, ua.Offsets(), w.cfg.Engine, w.cfg.Codec); err != nil {
			return err
		}
	}

	for _, child := range ua.Children() {
		if err := w.write(child, out); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) writeDictionary(da arrowarray.DictionaryArray, out *Payload) error {
	validity, hasV := da.Validity()
	if err := WriteBitmap(out.Body, &out.Buffers, &out.offset, validity, hasV); err != nil {
		return err
	}

	return WriteBuffer(out.Body, &out.Buffers, &out.offset, da.Keys().Values(), w.cfg.Engine, w.cfg.Codec)
}

// WriteDictionaryBatch emits a dictionary's values array into its own
// Payload, recursively written as an ordinary array. id is not recorded
// in out.
func (w *Writer) WriteDictionaryBatch(id uint64, values arrowarray.Array, out *Payload) error {
	return w.write(values, out)
}

func int8sToBytes(v []int8) []byte {
	out := make([]byte, len(v))
	for i, x := range v {
		out[i] = byte(x)
	}

	return out
}

// normalizeOffsets subtracts offsets[0] from every element, returning the
// normalized slice, the original base offset, and the normalized final
// offset (the slice length of the child region to carry forward). A
// sliced array's offsets are not zero-based, and the wire format always
// writes offsets relative to the child region actually emitted.
func normalizeOffsets[O arrowarray.Offset](offsets []O) ([]O, O, O) {
	base := offsets[0]
	if base == 0 {
		return offsets, 0, offsets[len(offsets)-1]
	}

	out := make([]O, len(offsets))
	for i, o := range offsets {
		out[i] = o - base
	}

	return out, base, out[len(out)-1]
}
