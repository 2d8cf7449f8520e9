// Package mock provides scripted wire-message builders used by the root
// package's decoder integration tests. It plays
// the same role the teacher's pkg/mock/buffer.go played for server-side
// fixtures, adapted to a client decoding arbitrary backend byte streams
// rather than a server reading client requests.
package mock

import (
	"testing"

	"github.com/jammerwock/rascql/pkg/buffer"
)

// Frame builds a single framed wire message of the given type byte. build is
// called with a fresh Writer so the caller can append the message's fields;
// Frame then terminates the frame and fails the test on encode error.
func Frame(t *testing.T, typeByte byte, build func(w *buffer.Writer)) []byte {
	t.Helper()

	w := buffer.NewWriter()
	w.Start(typeByte)
	build(w)

	b, err := w.End()
	if err != nil {
		t.Fatalf("failed to encode mock frame %q: %v", typeByte, err)
	}

	return b
}

// UntypedFrame builds a single framed version-zero message (no type byte),
// used for StartupMessage, SSLRequest and CancelRequest fixtures.
func UntypedFrame(t *testing.T, build func(w *buffer.Writer)) []byte {
	t.Helper()

	w := buffer.NewWriter()
	w.StartUntyped()
	build(w)

	b, err := w.End()
	if err != nil {
		t.Fatalf("failed to encode mock untyped frame: %v", err)
	}

	return b
}

// Concat joins any number of already-framed messages into a single byte
// stream, as if they had all arrived back to back on the wire.
func Concat(frames ...[]byte) []byte {
	var total int
	for _, f := range frames {
		total += len(f)
	}

	out := make([]byte, 0, total)
	for _, f := range frames {
		out = append(out, f...)
	}

	return out
}

// Chunks splits data into pieces of the given sizes, in order, with any
// remainder appended as a final piece. It exists so Decoder tests can drive
// Push with arbitrary, adversarial chunk boundaries: a size smaller than a
// single field, a split across a message's length prefix, a single byte at a
// time, and so on, per §9's "arbitrary chunk boundary" testable property.
func Chunks(data []byte, sizes ...int) [][]byte {
	var out [][]byte

	for _, size := range sizes {
		if size <= 0 || len(data) == 0 {
			continue
		}

		if size > len(data) {
			size = len(data)
		}

		out = append(out, data[:size])
		data = data[size:]
	}

	if len(data) > 0 {
		out = append(out, data)
	}

	return out
}

// ByteAtATime splits data into single-byte chunks, the most adversarial
// chunk boundary the decoder must tolerate.
func ByteAtATime(data []byte) [][]byte {
	out := make([][]byte, len(data))
	for i, b := range data {
		out[i] = []byte{b}
	}

	return out
}
