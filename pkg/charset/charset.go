// Package charset provides the character-encoding parameter threaded through
// every frontend/backend string field. It lives in its own package (rather
// than the message model or buffer package) so that both can depend on it
// without an import cycle.
package charset

import (
	"golang.org/x/text/encoding"
)

// Charset transcodes between raw wire bytes and Go strings. It is supplied
// as an explicit parameter to every encode/decode call; it is never global
// mutable state (spec.md §3 Charset).
type Charset struct {
	enc encoding.Encoding
}

// New wraps a golang.org/x/text encoding as a Charset. Use this to support a
// server configured with client_encoding values other than UTF8, e.g.
// charmap.Windows1252 or charmap.ISO8859_1.
func New(enc encoding.Encoding) Charset {
	return Charset{enc: enc}
}

// UTF8 is the default charset. Go strings are already UTF-8, so encode/decode
// is a passthrough; it is exposed as its own value (rather than relying on
// the zero Charset) so callers can be explicit about intent.
var UTF8 = Charset{enc: encoding.Nop}

// Decode transcodes raw server bytes into a Go string.
func (c Charset) Decode(b []byte) (string, error) {
	decoded, err := c.encoding().NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(decoded), nil
}

// Encode transcodes a Go string into raw bytes suitable for the wire.
func (c Charset) Encode(s string) ([]byte, error) {
	return c.encoding().NewEncoder().Bytes([]byte(s))
}

func (c Charset) encoding() encoding.Encoding {
	if c.enc == nil {
		return encoding.Nop
	}

	return c.enc
}
