package rascql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jammerwock/rascql/pkg/buffer"
)

func TestFieldFormatsDefault(t *testing.T) {
	t.Parallel()

	w := buffer.NewWriter()
	w.Start('B')
	DefaultFieldFormats().encode(w)
	b, err := w.End()
	require.NoError(t, err)

	assert.Equal(t, []byte{'B', 0, 0, 0, 6, 0x00, 0x00}, b)
}

func TestFieldFormatsMatched(t *testing.T) {
	t.Parallel()

	w := buffer.NewWriter()
	w.Start('B')
	MatchedFieldFormats(FormatBinary).encode(w)
	b, err := w.End()
	require.NoError(t, err)

	assert.Equal(t, []byte{'B', 0, 0, 0, 8, 0x00, 0x01, 0x00, 0x01}, b)
}

func TestFieldFormatsMixed(t *testing.T) {
	t.Parallel()

	w := buffer.NewWriter()
	w.Start('B')
	MixedFieldFormats([]FormatCode{FormatText, FormatBinary}).encode(w)
	b, err := w.End()
	require.NoError(t, err)

	assert.Equal(t, []byte{'B', 0, 0, 0, 10, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01}, b)
}
