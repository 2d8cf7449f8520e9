package buffer

import (
	"bytes"
	"encoding/binary"

	"github.com/jammerwock/rascql/pkg/charset"
)

// Writer builds a single framed wire message. Unlike the teacher's writer it
// does not own an io.Writer: the message model builds a complete frame in
// memory and hands the caller the finished bytes (the FrontendMessage.Encode
// contract of §5.2), leaving transport entirely up to the caller.
type Writer struct {
	frame  bytes.Buffer
	typed  bool
	putbuf [4]byte
	err    error
}

// NewWriter constructs an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Start resets the buffer and starts a new message framed with the given
// type byte. Four bytes are reserved for the length field up front and
// backpatched by End.
func (writer *Writer) Start(t byte) {
	writer.Reset()
	writer.typed = true
	writer.frame.WriteByte(t)
	writer.frame.Write(writer.putbuf[:4])
}

// StartUntyped resets the buffer and starts a version-zero message with no
// type byte: StartupMessage, SSLRequest, CancelRequest.
func (writer *Writer) StartUntyped() {
	writer.Reset()
	writer.typed = false
	writer.frame.Write(writer.putbuf[:4])
}

// Reset empties the frame buffer so the Writer can be reused.
func (writer *Writer) Reset() {
	writer.frame.Reset()
	writer.typed = false
	writer.err = nil
}

// Error returns the first error encountered while building the current
// frame, if any.
func (writer *Writer) Error() error {
	return writer.err
}

// Byte writes a single byte.
func (writer *Writer) Byte(b byte) {
	if writer.err != nil {
		return
	}

	writer.err = writer.frame.WriteByte(b)
}

// Int16 writes a big-endian signed 16-bit integer.
func (writer *Writer) Int16(i int16) {
	if writer.err != nil {
		return
	}

	binary.BigEndian.PutUint16(writer.putbuf[:2], uint16(i))
	_, writer.err = writer.frame.Write(writer.putbuf[:2])
}

// Int32 writes a big-endian signed 32-bit integer.
func (writer *Writer) Int32(i int32) {
	if writer.err != nil {
		return
	}

	binary.BigEndian.PutUint32(writer.putbuf[:4], uint32(i))
	_, writer.err = writer.frame.Write(writer.putbuf[:4])
}

// Uint32 writes a big-endian unsigned 32-bit integer.
func (writer *Writer) Uint32(i uint32) {
	if writer.err != nil {
		return
	}

	binary.BigEndian.PutUint32(writer.putbuf[:4], i)
	_, writer.err = writer.frame.Write(writer.putbuf[:4])
}

// Bytes writes raw bytes as-is.
func (writer *Writer) Bytes(b []byte) {
	if writer.err != nil {
		return
	}

	_, writer.err = writer.frame.Write(b)
}

// CString transcodes s via cs and writes it followed by a NUL terminator.
func (writer *Writer) CString(cs charset.Charset, s string) {
	if writer.err != nil {
		return
	}

	encoded, err := cs.Encode(s)
	if err != nil {
		writer.err = err
		return
	}

	writer.frame.Write(encoded)
	writer.frame.WriteByte(0)
}

// NullTerminate writes a single NUL byte.
func (writer *Writer) NullTerminate() {
	if writer.err != nil {
		return
	}

	writer.err = writer.frame.WriteByte(0)
}

// End backpatches the reserved length field with the frame's length
// (everything after the type byte, or the whole frame for untyped messages)
// and returns the finished frame, or the first error encountered while
// building it. The Writer is reset and ready for reuse either way.
func (writer *Writer) End() ([]byte, error) {
	defer writer.Reset()

	if writer.err != nil {
		return nil, writer.err
	}

	b := make([]byte, writer.frame.Len())
	copy(b, writer.frame.Bytes())

	lengthOffset := 0
	if writer.typed {
		lengthOffset = 1
	}

	length := uint32(len(b) - lengthOffset)
	binary.BigEndian.PutUint32(b[lengthOffset:lengthOffset+4], length)

	return b, nil
}

// LengthPrefix prepends a big-endian length (payload length + 4, covering
// the length field itself) to payload, the framing helper described in
// spec.md §4.1 for callers that already have a complete payload in hand.
func LengthPrefix(payload []byte) []byte {
	out := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(out[:4], uint32(len(payload)+4))
	copy(out[4:], payload)
	return out
}
