package coldex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldex-io/coldex/arrowarray"
	"github.com/coldex-io/coldex/arrowtype"
	"github.com/coldex-io/coldex/ipc"
	"github.com/coldex-io/coldex/page"
)

type bodyReader struct{ b []byte }

func (r bodyReader) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, r.b[off:]), nil
}

func TestWriterReaderRoundTrip(t *testing.T) {
	arr := arrowarray.NewPrimitiveArray(arrowtype.NewPrimitive(arrowtype.I32), []int32{1, 2, 3}, arrowarray.Bitmap{}, false)

	w, err := NewWriter()
	require.NoError(t, err)

	out := ipc.NewPayload()
	defer out.Release()

	require.NoError(t, w.Write(arr, out))

	r, err := NewReader()
	require.NoError(t, err)

	nodes := append([]ipc.FieldNode(nil), out.Nodes...)
	buffers := append([]ipc.Buffer(nil), out.Buffers...)

	got, err := r.Read(arr.DataType(), &nodes, &buffers, bodyReader{out.Body.Bytes()}, 0, ipc.NewDictionaries())
	require.NoError(t, err)

	gotPrim, ok := got.(arrowarray.PrimitiveArray[int32])
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3}, gotPrim.Values())
}

func TestNewPageDecoder(t *testing.T) {
	dec := NewPageDecoder[int32](page.NewSlicePages(nil), 10, nil)

	chunk, err := dec.Next()
	require.NoError(t, err)
	assert.Nil(t, chunk)
}
