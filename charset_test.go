package rascql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestNewCharsetWindows1252RoundTrip(t *testing.T) {
	t.Parallel()

	cs := NewCharset(charmap.Windows1252)

	// 'é' is a single Windows-1252 byte (0xE9) but two UTF-8 bytes, so this
	// only round-trips correctly if the charset is actually applied rather
	// than treated as a passthrough.
	encoded, err := cs.Encode("café")
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, encoded)

	decoded, err := cs.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, "café", decoded)
}

func TestNewCharsetISO8859_1Query(t *testing.T) {
	t.Parallel()

	cs := NewCharset(charmap.ISO8859_1)

	b, err := Query{Text: "select 1"}.Encode(cs)
	require.NoError(t, err)
	assert.Equal(t, "select 1\x00", string(b[5:]))
}
