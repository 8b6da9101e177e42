package ipc

import (
	"io"

	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/arrowtype"
	"github.com/coldex-io/coldex/errs"
	"github.com/coldex-io/coldex/internal/options"
)

// Reader inverts Writer: it consumes a FieldNode FIFO and a Buffer FIFO
// front-to-back, resolving dictionary-typed columns against a
// Dictionaries table, dispatching on the target DataType's Kind the same
// way Writer does.
type Reader struct {
	cfg *ReaderConfig
}

// NewReader builds a Reader configured by opts.
func NewReader(opts ...options.Option[*ReaderConfig]) (*Reader, error) {
	cfg, err := newReaderConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Reader{cfg: cfg}, nil
}

// Read decodes one array of type dt, consuming exactly the FieldNode(s) and
// Buffer(s) it and its descendants need from nodes/buffers, reading body
// bytes relative to blockOffset, and resolving any Dictionary column
// through dicts.
func (r *Reader) Read(dt arrowtype.DataType, nodes *[]FieldNode, buffers *[]Buffer, body io.ReaderAt, blockOffset int64, dicts *Dictionaries) (arrowarray.Array, error) {
	return r.read(dt, nodes, buffers, body, blockOffset, dicts)
}

// CheckBody verifies body against want when WithReaderBodyChecksum was
// enabled, returning errs.ErrCorruptStream on mismatch; a no-op
// otherwise. Call once per record, against the same raw body bytes the
// writer computed its checksum over.
func (r *Reader) CheckBody(body []byte, want uint64) error {
	if !r.cfg.Checksum {
		return nil
	}

	return VerifyBodyChecksum(body, want)
}

func popNode(nodes *[]FieldNode) (FieldNode, error) {
	if len(*nodes) == 0 {
		return FieldNode{}, errs.CorruptStream("field node stream exhausted")
	}

	n := (*nodes)[0]
	*nodes = (*nodes)[1:]

	return n, nil
}

func popBuffer(buffers *[]Buffer) (Buffer, error) {
	if len(*buffers) == 0 {
		return Buffer{}, errs.CorruptStream("buffer stream exhausted")
	}

	b := (*buffers)[0]
	*buffers = (*buffers)[1:]

	return b, nil
}

func (r *Reader) read(dt arrowtype.DataType, nodes *[]FieldNode, buffers *[]Buffer, body io.ReaderAt, blockOffset int64, dicts *Dictionaries) (arrowarray.Array, error) {
	node, err := popNode(nodes)
	if err != nil {
		return nil, err
	}

	switch dt.Kind() {
	case arrowtype.KindNull:
		return arrowarray.NewNullArray(int(node.Length)), nil

	case arrowtype.KindBoolean:
		validityBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
		if err != nil {
			return nil, err
		}

		valuesBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		values, _, err := ReadBitmap(body, blockOffset, valuesBuf, int(node.Length), 0)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewBooleanArray(values, validity, hasV), nil

	case arrowtype.KindPrimitive:
		return r.readPrimitive(dt.Primitive(), node, buffers, body, blockOffset)

	case arrowtype.KindBinary, arrowtype.KindUtf8:
		return readBinary[int32](dt, node, buffers, body, blockOffset, dt.Kind() == arrowtype.KindUtf8, false, r.cfg)

	case arrowtype.KindLargeBinary, arrowtype.KindLargeUtf8:
		return readBinary[int64](dt, node, buffers, body, blockOffset, dt.Kind() == arrowtype.KindLargeUtf8, true, r.cfg)

	case arrowtype.KindFixedSizeBinary:
		validityBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
		if err != nil {
			return nil, err
		}

		valuesBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		raw, err := ReadRawBytes(body, blockOffset, valuesBuf)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewFixedSizeBinaryArray(dt.FixedWidth(), raw, validity, hasV), nil

	case arrowtype.KindList:
		return r.readList(dt, node, nodes, buffers, body, blockOffset, dicts, false)

	case arrowtype.KindLargeList:
		return r.readList(dt, node, nodes, buffers, body, blockOffset, dicts, true)

	case arrowtype.KindFixedSizeList:
		validityBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
		if err != nil {
			return nil, err
		}

		child, err := r.read(dt.Elem().Type, nodes, buffers, body, blockOffset, dicts)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewFixedSizeListArray(dt.Elem(), dt.FixedWidth(), int(node.Length), child, validity, hasV), nil

	case arrowtype.KindStruct:
		validityBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
		if err != nil {
			return nil, err
		}

		children := make([]arrowarray.Array, len(dt.Fields()))
		for i, f := range dt.Fields() {
			child, err := r.read(f.Type, nodes, buffers, body, blockOffset, dicts)
			if err != nil {
				return nil, err
			}

			children[i] = child
		}

		return arrowarray.NewStructArray(dt.Fields(), children, int(node.Length), validity, hasV), nil

	case arrowtype.KindMap:
		validityBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
		if err != nil {
			return nil, err
		}

		offsetsBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		offsets, err := ReadBuffer[int32](body, blockOffset, offsetsBuf, r.cfg.Engine, r.cfg.Codec, int(node.Length)+1)
		if err != nil {
			return nil, err
		}

		entriesArr, err := r.read(dt.Elem().Type, nodes, buffers, body, blockOffset, dicts)
		if err != nil {
			return nil, err
		}

		entries, ok := entriesArr.(arrowarray.StructArray)
		if !ok {
			return nil, errs.CorruptStream("map entries child is not a struct")
		}

		return arrowarray.NewMapArray(dt.Elem(), dt.MapKeysSorted(), offsets, entries, validity, hasV), nil

	case arrowtype.KindUnion:
		return r.readUnion(dt, node, nodes, buffers, body, blockOffset, dicts)

	case arrowtype.KindDictionary:
		return r.readDictionary(dt, node, buffers, body, blockOffset, dicts)

	default:
		return nil, errs.NotYetImplemented("read for kind %s", dt.Kind())
	}
}

func (r *Reader) readPrimitive(p arrowtype.Primitive, node FieldNode, buffers *[]Buffer, body io.ReaderAt, blockOffset int64) (arrowarray.Array, error) {
	validityBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
	if err != nil {
		return nil, err
	}

	valuesBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	dt := arrowtype.NewPrimitive(p)
	n := int(node.Length)

	switch p {
	case arrowtype.I8:
		v, err := ReadBuffer[int8](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.I16:
		v, err := ReadBuffer[int16](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.I32, arrowtype.Days32, arrowtype.Month12:
		v, err := ReadBuffer[int32](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.I64, arrowtype.Ms64, arrowtype.Ns64:
		v, err := ReadBuffer[int64](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.U8:
		v, err := ReadBuffer[uint8](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.U16:
		v, err := ReadBuffer[uint16](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.U32:
		v, err := ReadBuffer[uint32](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.U64:
		v, err := ReadBuffer[uint64](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.F32:
		v, err := ReadBuffer[float32](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	case arrowtype.F64:
		v, err := ReadBuffer[float64](body, blockOffset, valuesBuf, r.cfg.Engine, r.cfg.Codec, n)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewPrimitiveArray(dt, v, validity, hasV), nil
	default:
		return nil, errs.NotYetImplemented("read for primitive %s", p)
	}
}

func readBinary[O arrowarray.Offset](dt arrowtype.DataType, node FieldNode, buffers *[]Buffer, body io.ReaderAt, blockOffset int64, utf8, large bool, cfg *ReaderConfig) (arrowarray.Array, error) {
	validityBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
	if err != nil {
		return nil, err
	}

	offsetsBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	offsets, err := ReadBuffer[O](body, blockOffset, offsetsBuf, cfg.Engine, cfg.Codec, int(node.Length)+1)
	if err != nil {
		return nil, err
	}

	valuesBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	values, err := ReadRawBytes(body, blockOffset, valuesBuf)
	if err != nil {
		return nil, err
	}

	return arrowarray.NewBinaryArray(offsets, values, validity, hasV, large, utf8), nil
}

func (r *Reader) readList(dt arrowtype.DataType, node FieldNode, nodes *[]FieldNode, buffers *[]Buffer, body io.ReaderAt, blockOffset int64, dicts *Dictionaries, large bool) (arrowarray.Array, error) {
	validityBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
	if err != nil {
		return nil, err
	}

	offsetsBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	child, err := r.read(dt.Elem().Type, nodes, buffers, body, blockOffset, dicts)
	if err != nil {
		return nil, err
	}

	if large {
		offsets, err := ReadBuffer[int64](body, blockOffset, offsetsBuf, r.cfg.Engine, r.cfg.Codec, int(node.Length)+1)
		if err != nil {
			return nil, err
		}

		return arrowarray.NewListArray(dt.Elem(), offsets, child, validity, hasV, true), nil
	}

	offsets, err := ReadBuffer[int32](body, blockOffset, offsetsBuf, r.cfg.Engine, r.cfg.Codec, int(node.Length)+1)
	if err != nil {
		return nil, err
	}

	return arrowarray.NewListArray(dt.Elem(), offsets, child, validity, hasV, false), nil
}

func (r *Reader) readUnion(dt arrowtype.DataType, node FieldNode, nodes *[]FieldNode, buffers *[]Buffer, body io.ReaderAt, blockOffset int64, dicts *Dictionaries) (arrowarray.Array, error) {
	typeIDsBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	rawTypeIDs, err := ReadRawBytes(body, blockOffset, typeIDsBuf)
	if err != nil {
		return nil, err
	}

	rowTypes := make([]int8, len(rawTypeIDs))
	for i, b := range rawTypeIDs {
		rowTypes[i] = int8(b)
	}

	var offsets []int32

	if dt.UnionMode() == arrowtype.UnionDense {
		offsetsBuf, err := popBuffer(buffers)
		if err != nil {
			return nil, err
		}

		offsets, err = ReadBuffer[int32](body, blockOffset, offsetsBuf, r.cfg.Engine, r.cfg.Codec, int(node.Length))
		if err != nil {
			return nil, err
		}
	}

	children := make([]arrowarray.Array, len(dt.Fields()))
	for i, f := range dt.Fields() {
		child, err := r.read(f.Type, nodes, buffers, body, blockOffset, dicts)
		if err != nil {
			return nil, err
		}

		children[i] = child
	}

	ua, err := arrowarray.NewUnionArray(dt.UnionMode(), dt.Fields(), dt.UnionTypeIDs(), children, rowTypes, offsets)
	if err != nil {
		return nil, err
	}

	return ua, nil
}

func (r *Reader) readDictionary(dt arrowtype.DataType, node FieldNode, buffers *[]Buffer, body io.ReaderAt, blockOffset int64, dicts *Dictionaries) (arrowarray.Array, error) {
	validityBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	validity, hasV, err := ReadBitmap(body, blockOffset, validityBuf, int(node.Length), node.NullCount)
	if err != nil {
		return nil, err
	}

	keysBuf, err := popBuffer(buffers)
	if err != nil {
		return nil, err
	}

	keyValues, err := ReadBuffer[int64](body, blockOffset, keysBuf, r.cfg.Engine, r.cfg.Codec, int(node.Length))
	if err != nil {
		return nil, err
	}

	values, err := dicts.Get(dt.DictID())
	if err != nil {
		return nil, err
	}

	for i, k := range keyValues {
		if hasV && !validity.IsValid(i) {
			continue
		}

		if k < 0 || k >= int64(values.Len()) {
			return nil, errs.CorruptStream("dictionary key %d at row %d out of range [0, %d)", k, i, values.Len())
		}
	}

	keys := arrowarray.NewPrimitiveArray(arrowtype.NewPrimitive(dt.DictKeyType()), keyValues, validity, hasV)

	return arrowarray.NewDictionaryArray(dt.DictKeyType(), keys, values, dt.DictOrdered(), dt.DictID()), nil
}

// Skip discards the FieldNode(s) and Buffer(s) that dt's subtree occupies
// in nodes/buffers without touching the body, for callers that only need
// to step past a column (e.g. schema projection, page-level prefetch).
func Skip(dt arrowtype.DataType, nodes *[]FieldNode, buffers *[]Buffer) error {
	if _, err := popNode(nodes); err != nil {
		return err
	}

	switch dt.Kind() {
	case arrowtype.KindNull:
		return nil

	case arrowtype.KindBoolean:
		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		_, err := popBuffer(buffers)

		return err

	case arrowtype.KindPrimitive, arrowtype.KindFixedSizeBinary, arrowtype.KindDictionary:
		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		_, err := popBuffer(buffers)

		return err

	case arrowtype.KindBinary, arrowtype.KindLargeBinary, arrowtype.KindUtf8, arrowtype.KindLargeUtf8:
		for i := 0; i < 3; i++ {
			if _, err := popBuffer(buffers); err != nil {
				return err
			}
		}

		return nil

	case arrowtype.KindList, arrowtype.KindLargeList:
		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		return Skip(dt.Elem().Type, nodes, buffers)

	case arrowtype.KindFixedSizeList:
		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		return Skip(dt.Elem().Type, nodes, buffers)

	case arrowtype.KindStruct:
		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		for _, f := range dt.Fields() {
			if err := Skip(f.Type, nodes, buffers); err != nil {
				return err
			}
		}

		return nil

	case arrowtype.KindMap:
		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		return Skip(dt.Elem().Type, nodes, buffers)

	case arrowtype.KindUnion:
		if _, err := popBuffer(buffers); err != nil {
			return err
		}

		if dt.UnionMode() == arrowtype.UnionDense {
			if _, err := popBuffer(buffers); err != nil {
				return err
			}
		}

		for _, f := range dt.Fields() {
			if err := Skip(f.Type, nodes, buffers); err != nil {
				return err
			}
		}

		return nil

	default:
		return errs.NotYetImplemented("skip for kind %s", dt.Kind())
	}
}
