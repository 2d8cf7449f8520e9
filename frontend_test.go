package rascql

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jammerwock/rascql/pkg/buffer"
)

func buildReader(t *testing.T, untypedFrame []byte) *buffer.Reader {
	t.Helper()
	return buffer.NewReader(untypedFrame[4:])
}

func TestTerminateEncoding(t *testing.T) {
	t.Parallel()

	b, err := Terminate{}.Encode(UTF8)
	require.NoError(t, err)
	assert.Equal(t, []byte{'X', 0, 0, 0, 4}, b)
}

func TestStartupMessageEncoding(t *testing.T) {
	t.Parallel()

	b, err := StartupMessage{User: "alice"}.Encode(UTF8)
	require.NoError(t, err)

	length := binary.BigEndian.Uint32(b[:4])
	assert.Equal(t, uint32(len(b)), length)

	expected := append([]byte{}, b[:4]...)
	expected = append(expected, 0x00, 0x03, 0x00, 0x00)
	expected = append(expected, []byte("user\x00alice\x00")...)
	expected = append(expected, 0x00)

	assert.Equal(t, expected, b)
}

func TestStartupMessageUserOverridesDuplicate(t *testing.T) {
	t.Parallel()

	b, err := StartupMessage{
		User:       "alice",
		Parameters: map[string]string{"user": "bob", "database": "postgres"},
	}.Encode(UTF8)
	require.NoError(t, err)

	r := buildReader(t, b)
	_, err = r.Int32()
	require.NoError(t, err)

	seenUser := false
	for {
		key, err := r.CString(UTF8)
		require.NoError(t, err)
		if key == "" {
			break
		}

		value, err := r.CString(UTF8)
		require.NoError(t, err)

		if key == "user" {
			seenUser = true
			assert.Equal(t, "alice", value)
		}
	}

	assert.True(t, seenUser)
}

func TestRoundTripFraming(t *testing.T) {
	t.Parallel()

	messages := []FrontendMessage{
		Query{Text: "select 1"},
		Execute{Portal: "p", MaxRows: 10},
		Sync{},
		Flush{},
		Close{Target: Descriptor{Kind: 'S', Name: "stmt"}},
	}

	for _, m := range messages {
		b, err := m.Encode(UTF8)
		require.NoError(t, err)

		require.GreaterOrEqual(t, len(b), 5)

		length := binary.BigEndian.Uint32(b[1:5])
		contentLength := int(length) - 4
		assert.Equal(t, contentLength, len(b)-5)
	}
}

func TestEmptyMessagesAreMemoized(t *testing.T) {
	t.Parallel()

	a, err := Sync{}.Encode(UTF8)
	require.NoError(t, err)

	b, err := Sync{}.Encode(UTF8)
	require.NoError(t, err)

	assert.Equal(t, []byte{'S', 0, 0, 0, 4}, a)
	assert.Same(t, &a[0], &b[0], "Sync{}.Encode should return the same cached backing array every call")
}

func TestCancelRequestEncoding(t *testing.T) {
	t.Parallel()

	b, err := CancelRequest{ProcessID: 42, SecretKey: 99}.Encode(UTF8)
	require.NoError(t, err)

	assert.Equal(t, 16, len(b))
	assert.Equal(t, uint32(16), binary.BigEndian.Uint32(b[:4]))
	assert.Equal(t, uint32(80877102), binary.BigEndian.Uint32(b[4:8]))
	assert.Equal(t, int32(42), int32(binary.BigEndian.Uint32(b[8:12])))
	assert.Equal(t, int32(99), int32(binary.BigEndian.Uint32(b[12:16])))
}
