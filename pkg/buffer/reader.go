package buffer

import (
	"bytes"
	"encoding/binary"

	"github.com/jammerwock/rascql/pkg/charset"
	"github.com/jammerwock/rascql/pkg/types"
)

// Reader provides a convenient, allocation-light way to read the fields of a
// single already-framed message body. Unlike the teacher's reader, a Reader
// here never touches an io.Reader itself: the decoder loop (pkg/decoder) owns
// chunk assembly and framing, and hands a Reader only the exact payload bytes
// of one message at a time. This keeps the reader pure and trivially testable
// against byte literals.
type Reader struct {
	Msg []byte
}

// NewReader constructs a Reader over the given message payload. The slice is
// not copied; the caller must not mutate it while the Reader is in use.
func NewReader(msg []byte) *Reader {
	return &Reader{Msg: msg}
}

// Remaining returns the number of unread bytes left in the buffer.
func (reader *Reader) Remaining() int {
	return len(reader.Msg)
}

// Peek returns the next n bytes without consuming them, and whether that many
// bytes are actually available. This is the non-destructive split §4.1
// requires: callers that discover a frame is incomplete can retry later
// without having mutated the reader.
func (reader *Reader) Peek(n int) ([]byte, bool) {
	if len(reader.Msg) < n {
		return nil, false
	}

	return reader.Msg[:n], true
}

// Byte reads a single byte.
func (reader *Reader) Byte() (byte, error) {
	if len(reader.Msg) < 1 {
		return 0, NewInsufficientData(len(reader.Msg))
	}

	v := reader.Msg[0]
	reader.Msg = reader.Msg[1:]
	return v, nil
}

// Bytes returns the next n bytes. n == -1 is the PostgreSQL convention for a
// NULL column value and returns a nil slice with no error; any other
// negative n is ill-formed on the wire (spec.md §9's resolution of the
// DataRow-NULL open question: "length == -1 is NULL, any other negative
// value is ill-formed") and fails.
func (reader *Reader) Bytes(n int) ([]byte, error) {
	if n == -1 {
		return nil, nil
	}

	if n < 0 {
		return nil, NewIllFormedLength(n)
	}

	if len(reader.Msg) < n {
		return nil, NewInsufficientData(len(reader.Msg))
	}

	v := reader.Msg[:n]
	reader.Msg = reader.Msg[n:]
	return v, nil
}

// Int16 reads a big-endian signed 16-bit integer.
func (reader *Reader) Int16() (int16, error) {
	if len(reader.Msg) < 2 {
		return 0, NewInsufficientData(len(reader.Msg))
	}

	v := int16(binary.BigEndian.Uint16(reader.Msg[:2]))
	reader.Msg = reader.Msg[2:]
	return v, nil
}

// Uint16 reads a big-endian unsigned 16-bit integer.
func (reader *Reader) Uint16() (uint16, error) {
	if len(reader.Msg) < 2 {
		return 0, NewInsufficientData(len(reader.Msg))
	}

	v := binary.BigEndian.Uint16(reader.Msg[:2])
	reader.Msg = reader.Msg[2:]
	return v, nil
}

// Int32 reads a big-endian signed 32-bit integer.
func (reader *Reader) Int32() (int32, error) {
	if len(reader.Msg) < 4 {
		return 0, NewInsufficientData(len(reader.Msg))
	}

	v := int32(binary.BigEndian.Uint32(reader.Msg[:4]))
	reader.Msg = reader.Msg[4:]
	return v, nil
}

// Uint32 reads a big-endian unsigned 32-bit integer.
func (reader *Reader) Uint32() (uint32, error) {
	if len(reader.Msg) < 4 {
		return 0, NewInsufficientData(len(reader.Msg))
	}

	v := binary.BigEndian.Uint32(reader.Msg[:4])
	reader.Msg = reader.Msg[4:]
	return v, nil
}

// CString reads a null-terminated string, transcoding it via charset. It
// fails with a framing error rather than silently returning everything
// remaining if no NUL terminator is found (spec.md §9's resolution of the
// getCString open question).
func (reader *Reader) CString(cs charset.Charset) (string, error) {
	pos := bytes.IndexByte(reader.Msg, 0)
	if pos == -1 {
		return "", NewMissingNulTerminator()
	}

	raw := reader.Msg[:pos]
	reader.Msg = reader.Msg[pos+1:]
	return cs.Decode(raw)
}

// DescriptorKind returns the buffer's next byte as a types.DescriptorKind.
func (reader *Reader) DescriptorKind() (types.DescriptorKind, error) {
	b, err := reader.Byte()
	if err != nil {
		return 0, err
	}

	return types.DescriptorKind(b), nil
}
