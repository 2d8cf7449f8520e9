package rascql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jammerwock/rascql/pkg/buffer"
	"github.com/jammerwock/rascql/pkg/decoder"
	"github.com/jammerwock/rascql/pkg/mock"
)

func decodeBackendFor(t *testing.T) decoder.MessageDecoder[BackendMessage] {
	t.Helper()

	return func(code byte, body []byte) (BackendMessage, error) {
		return DecodeBackend(code, UTF8, body)
	}
}

// TestDecoderArbitraryChunkBoundaries exercises pkg/decoder against real
// backend frames built with pkg/mock, split at every byte boundary, to
// confirm the stage is indifferent to how the transport happened to chunk
// the stream (§9's "arbitrary chunk boundary" testable property).
func TestDecoderArbitraryChunkBoundaries(t *testing.T) {
	t.Parallel()

	readyForQuery := mock.Frame(t, 'Z', func(w *buffer.Writer) { w.Byte('I') })
	rowDescription := mock.Frame(t, 'T', func(w *buffer.Writer) {
		w.Int16(1)
		w.CString(UTF8, "id")
		w.Uint32(0)
		w.Int16(1)
		w.Uint32(23)
		w.Int16(4)
		w.Int32(-1)
		w.Int16(int16(FormatText))
	})

	stream := mock.Concat(readyForQuery, rowDescription)

	d := decoder.New(decodeBackendFor(t))

	for _, chunk := range mock.ByteAtATime(stream) {
		require.NoError(t, d.Push(chunk))
	}

	first, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, ReadyForQuery{Status: TransactionIdle}, first)

	second, ok := d.Next()
	require.True(t, ok)
	rd, ok := second.(RowDescription)
	require.True(t, ok)
	require.Len(t, rd.Fields, 1)
	assert.Equal(t, "id", rd.Fields[0].Name)

	_, ok = d.Next()
	assert.False(t, ok)
}

// TestDecoderChunksHelperBoundaries drives a single ReadyForQuery frame through
// mock.Chunks at a mix of adversarial split sizes, including a split across
// the 4-byte length prefix itself.
func TestDecoderChunksHelperBoundaries(t *testing.T) {
	t.Parallel()

	frame := mock.Frame(t, 'Z', func(w *buffer.Writer) { w.Byte('I') })

	for _, sizes := range [][]int{
		{len(frame)},
		{1, 2, len(frame)},
		{3, len(frame)},
	} {
		d := decoder.New(decodeBackendFor(t))

		for _, chunk := range mock.Chunks(frame, sizes...) {
			require.NoError(t, d.Push(chunk))
		}

		msg, ok := d.Next()
		require.True(t, ok)
		assert.Equal(t, ReadyForQuery{Status: TransactionIdle}, msg)
	}
}
