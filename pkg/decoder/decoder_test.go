package decoder

import (
	"errors"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jammerwock/rascql/pkg/buffer"
)

type fakeMessage struct {
	code byte
	body string
}

func decodeFake(code byte, body []byte) (fakeMessage, error) {
	if code == 'X' {
		return fakeMessage{}, errors.New("boom")
	}

	return fakeMessage{code: code, body: string(body)}, nil
}

// readyForQuery mirrors Scenario A/B's 6-byte frame: type 'Z', length 5,
// a single status byte 'I'.
func readyForQuery() []byte {
	return []byte{'Z', 0x00, 0x00, 0x00, 0x05, 'I'}
}

func TestDecoderScenarioA(t *testing.T) {
	t.Parallel()

	d := New(decodeFake, Logger[fakeMessage](slogt.New(t)))
	require.NoError(t, d.Push(readyForQuery()))

	msg, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, fakeMessage{code: 'Z', body: "I"}, msg)

	_, ok = d.Next()
	assert.False(t, ok)
}

func TestDecoderScenarioBChunked(t *testing.T) {
	t.Parallel()

	frame := readyForQuery()

	d := New(decodeFake)
	require.NoError(t, d.Push(frame[:1]))

	_, ok := d.Next()
	assert.False(t, ok, "no message should be emitted before the frame completes")

	require.NoError(t, d.Push(frame[1:]))

	msg, ok := d.Next()
	require.True(t, ok)
	assert.Equal(t, fakeMessage{code: 'Z', body: "I"}, msg)

	_, ok = d.Next()
	assert.False(t, ok)
}

func TestDecoderChunkingInvariance(t *testing.T) {
	t.Parallel()

	one := append([]byte{}, readyForQuery()...)
	two := []byte{'Z', 0x00, 0x00, 0x00, 0x04}
	stream := append(append([]byte{}, one...), two...)

	positions := [][]int{
		{len(stream)},
		{1, len(stream)},
		{3, 7, len(stream)},
		{1, 2, 3, 4, 5, 6, 7, 8, 9, len(stream)},
	}

	for _, splits := range positions {
		d := New(decodeFake)
		var prev int

		for _, pos := range splits {
			require.NoError(t, d.Push(stream[prev:pos]))
			prev = pos
		}

		first, ok := d.Next()
		require.True(t, ok)
		assert.Equal(t, fakeMessage{code: 'Z', body: "I"}, first)

		second, ok := d.Next()
		require.True(t, ok)
		assert.Equal(t, fakeMessage{code: 'Z', body: ""}, second)

		_, ok = d.Next()
		assert.False(t, ok)
	}
}

func TestDecoderMessageTooLong(t *testing.T) {
	t.Parallel()

	d := New(decodeFake, MaxMessageSize[fakeMessage](2))
	frame := []byte{'D', 0x00, 0x00, 0x00, 0x07, 'a', 'b', 'c'}

	err := d.Push(frame)
	require.Error(t, err)

	exceeded, ok := buffer.UnwrapMessageSizeExceeded(err)
	require.True(t, ok)
	assert.Equal(t, byte('D'), exceeded.Code)
	assert.Equal(t, 3, exceeded.Size)
	assert.Equal(t, 2, exceeded.Max)

	assert.True(t, d.Closed())
}

func TestDecoderDecodeFailureIsFatal(t *testing.T) {
	t.Parallel()

	d := New(decodeFake)
	frame := []byte{'X', 0x00, 0x00, 0x00, 0x04}

	err := d.Push(frame)
	assert.Error(t, err)
	assert.True(t, d.Closed())

	err2 := d.Push([]byte{'Z', 0x00, 0x00, 0x00, 0x05, 'I'})
	assert.Equal(t, err, err2, "a terminated decoder keeps returning its terminal error")

	_, ok := d.Next()
	assert.False(t, ok)
}

func TestDecoderClosePendingIsDropped(t *testing.T) {
	t.Parallel()

	d := New(decodeFake)
	require.NoError(t, d.Push(readyForQuery()))
	d.Close()

	_, ok := d.Next()
	assert.False(t, ok)
	assert.True(t, d.Closed())
}
