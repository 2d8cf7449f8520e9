package rascql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgerror "github.com/jammerwock/rascql/pkg/errors"
)

func TestErrorResponseFields(t *testing.T) {
	t.Parallel()

	body := []byte("SERROR\x00C42601\x00Msyntax error\x00Wline 1\nline 2\x00\x00")

	msg, err := DecodeBackend('E', UTF8, body)
	require.NoError(t, err)

	resp, ok := msg.(ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "ERROR", resp.Fields.Severity)
	assert.Equal(t, "42601", resp.Fields.SQLState)
	assert.Equal(t, "syntax error", resp.Fields.Message)
	assert.Equal(t, []string{"line 1", "line 2"}, resp.Fields.Where)
}

func TestResponseFieldsIgnoresUnrecognizedTags(t *testing.T) {
	t.Parallel()

	body := []byte("SERROR\x00Zignored\x00\x00")

	msg, err := DecodeBackend('N', UTF8, body)
	require.NoError(t, err)

	notice, ok := msg.(NoticeResponse)
	require.True(t, ok)
	assert.Equal(t, "ERROR", notice.Fields.Severity)
}

func TestErrorResponseErrFlattens(t *testing.T) {
	t.Parallel()

	body := []byte("SERROR\x00Msyntax error\x00Dnear \"SELEC\"\x00Hdid you mean SELECT?\x00Ffoo.c\x00L42\x00\x00")

	msg, err := DecodeBackend('E', UTF8, body)
	require.NoError(t, err)

	resp, ok := msg.(ErrorResponse)
	require.True(t, ok)

	flat := pgerror.Flatten(resp.Err())
	assert.Equal(t, pgerror.Severity("ERROR"), flat.Severity)
	assert.Equal(t, "syntax error", flat.Message)
	assert.Equal(t, "near \"SELEC\"", flat.Detail)
	assert.Equal(t, "did you mean SELECT?", flat.Hint)
	require.NotNil(t, flat.Source)
	assert.Equal(t, "foo.c", flat.Source.File)
	assert.Equal(t, int32(42), flat.Source.Line)
}
