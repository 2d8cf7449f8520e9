// Package decoder implements the streaming, back-pressure-aware
// transformation from a raw backend byte stream into a sequence of decoded
// messages, tolerant of arbitrary chunk boundaries.
package decoder

import (
	"encoding/binary"
	"log/slog"

	"github.com/jammerwock/rascql/pkg/buffer"
)

// MessageDecoder decodes a single message's payload given its type byte.
// The root rascql package's DecodeBackend fits this shape once its charset
// argument is bound in a closure; it is
// taken as a parameter here so the decoder stage has no import-time
// dependency on the Message Model, avoiding a cycle back to the root
// package.
type MessageDecoder[T any] func(code byte, body []byte) (T, error)

// Decoder is a single-threaded, cooperative stage: Push and Next are never
// called concurrently with themselves for one instance, and neither blocks
// a goroutine. It holds exactly the two pieces of state §4.3 names:
// remainder (bytes not yet forming a complete message) and decoded (a
// queue of messages already decoded and awaiting demand).
type Decoder[T any] struct {
	decode    MessageDecoder[T]
	maxLength int
	logger    *slog.Logger

	remainder []byte
	decoded   []T

	closed bool
	err    error
}

// DefaultMaxLength is used when New is not given a MaxMessageSize option.
const DefaultMaxLength = buffer.DefaultMaxMessageSize

// Option configures a Decoder at construction time, following the
// teacher's options.go functional-options pattern (OptionFn over *Server).
type Option[T any] func(*Decoder[T])

// MaxMessageSize bounds a single message's content length (excluding the
// 4-byte length field); the default is DefaultMaxLength.
func MaxMessageSize[T any](n int) Option[T] {
	return func(d *Decoder[T]) {
		if n > 0 {
			d.maxLength = n
		}
	}
}

// Logger sets the logger used for debug-level message-flow tracing,
// overriding the slog.Default() used otherwise.
func Logger[T any](logger *slog.Logger) Option[T] {
	return func(d *Decoder[T]) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New constructs a Decoder that dispatches complete message bodies to
// decode, configured by the given options.
func New[T any](decode MessageDecoder[T], opts ...Option[T]) *Decoder[T] {
	d := &Decoder[T]{decode: decode, maxLength: DefaultMaxLength, logger: slog.Default()}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Push appends a chunk of freshly-arrived bytes and attempts to parse as
// many complete messages from the front of the buffered remainder as
// possible, per §4.3's on-upstream-push. It is a no-op once the stage has
// failed or closed.
func (d *Decoder[T]) Push(chunk []byte) error {
	if d.closed || d.err != nil {
		return d.err
	}

	d.remainder = append(d.remainder, chunk...)

	for {
		consumed, msg, ok, err := d.tryDecodeOne(d.remainder)
		if err != nil {
			d.logger.Debug("decode failed", slog.Any("err", err))
			d.fail(err)
			return err
		}

		if !ok {
			break
		}

		d.remainder = d.remainder[consumed:]
		d.decoded = append(d.decoded, msg)
		d.logger.Debug("<- received", slog.Int("consumed", consumed), slog.Int("pending", len(d.decoded)))
	}

	return nil
}

// tryDecodeOne attempts to parse exactly one framed message from the front
// of buf. ok is false when buf does not yet hold a complete frame; the
// caller must retain buf unmodified and wait for more bytes.
func (d *Decoder[T]) tryDecodeOne(buf []byte) (consumed int, msg T, ok bool, err error) {
	const headerLen = 5 // type byte + i32 length

	if len(buf) < headerLen {
		return 0, msg, false, nil
	}

	code := buf[0]
	length := int(binary.BigEndian.Uint32(buf[1:5]))
	contentLength := length - 4

	if contentLength > d.maxLength {
		return 0, msg, false, buffer.NewMessageSizeExceeded(code, contentLength, d.maxLength)
	}

	if len(buf) < headerLen+contentLength {
		return 0, msg, false, nil
	}

	body := buf[headerLen : headerLen+contentLength]

	decoded, err := d.decode(code, body)
	if err != nil {
		return 0, msg, false, err
	}

	return headerLen + contentLength, decoded, true, nil
}

// Next pops the oldest decoded message awaiting demand. The boolean is
// false when none is available yet; the caller should Push more bytes (or,
// if upstream has finished, treat the stream as drained).
func (d *Decoder[T]) Next() (T, bool) {
	var zero T

	if len(d.decoded) == 0 {
		return zero, false
	}

	msg := d.decoded[0]
	d.decoded = d.decoded[1:]
	return msg, true
}

// Pending reports how many fully-decoded messages are queued awaiting Next.
func (d *Decoder[T]) Pending() int {
	return len(d.decoded)
}

// Err returns the error that terminated the stage, if any.
func (d *Decoder[T]) Err() error {
	return d.err
}

func (d *Decoder[T]) fail(err error) {
	d.err = err
	d.closed = true
	d.remainder = nil
	d.decoded = nil
}

// Close discards any buffered remainder and decoded-but-undelivered
// messages, per §4.3's upstream/downstream-finish semantics: no more bytes
// are requested and no partial frame is reported as an error.
func (d *Decoder[T]) Close() {
	if d.closed {
		return
	}

	d.closed = true
	d.remainder = nil
	d.decoded = nil
}

// Closed reports whether the stage has finished, either via Close or a
// terminal decode failure.
func (d *Decoder[T]) Closed() bool {
	return d.closed
}
