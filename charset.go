package rascql

import (
	"golang.org/x/text/encoding"

	"github.com/jammerwock/rascql/pkg/charset"
)

// Charset is the character encoding used to transcode every string field of
// every frontend and backend message. It is supplied as a parameter to each
// encode/decode call rather than held as global or connection-wide mutable
// state (spec.md §3 Charset). It lives in pkg/charset so pkg/buffer can share
// it without importing this package; Charset is aliased here for callers of
// the top-level API.
type Charset = charset.Charset

// NewCharset wraps a golang.org/x/text encoding as a Charset. Use this to
// support a server configured with client_encoding values other than UTF8,
// e.g. charmap.Windows1252 or charmap.ISO8859_1.
func NewCharset(enc encoding.Encoding) Charset {
	return charset.New(enc)
}

// UTF8 is the default charset. Go strings are already UTF-8, so encode/decode
// is a passthrough; it is exposed as its own value (rather than the zero
// Charset) so callers can be explicit about intent.
var UTF8 = charset.UTF8
