package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrMessageSizeExceeded(t *testing.T) {
	t.Parallel()

	max := DefaultMaxMessageSize
	size := max + 1024

	err := NewMessageSizeExceeded('D', size, max)
	assert.ErrorIs(t, err, ErrMessageSizeExceeded)

	exceeded, has := UnwrapMessageSizeExceeded(err)
	require.True(t, has, "expected message size exceeded to be wrapped")
	assert.Equal(t, byte('D'), exceeded.Code)
	assert.Equal(t, max, exceeded.Max)
	assert.Equal(t, size, exceeded.Size)
}
