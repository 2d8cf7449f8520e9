// Package scan provides the pluggable column-decoder contract: a trait-style
// interface mapping a raw column value (nil meaning SQL NULL) to a domain
// type, plus built-in decoders for the standard scalar categories.
package scan

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jammerwock/rascql/pkg/charset"
)

// Decoder converts a raw column value into a T. Decoders are pure; parse
// failures are returned to the caller rather than panicking.
type Decoder[T any] interface {
	Decode(value []byte, cs charset.Charset) (T, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc[T any] func(value []byte, cs charset.Charset) (T, error)

// Decode calls f.
func (f DecoderFunc[T]) Decode(value []byte, cs charset.Charset) (T, error) {
	return f(value, cs)
}

// AsOption decodes value via d, returning ok=false for a NULL column (a nil
// value) instead of invoking the decoder at all.
func AsOption[T any](d Decoder[T], value []byte, cs charset.Charset) (result T, ok bool, err error) {
	if value == nil {
		return result, false, nil
	}

	result, err = d.Decode(value, cs)
	return result, err == nil, err
}

// String decodes a column as its charset-decoded text, the basis every
// other built-in decoder except Byte is chained from; Byte reads the raw
// byte directly.
var String Decoder[string] = DecoderFunc[string](func(value []byte, cs charset.Charset) (string, error) {
	return cs.Decode(value)
})

func chain[T any](parse func(string) (T, error)) DecoderFunc[T] {
	return func(value []byte, cs charset.Charset) (T, error) {
		var zero T

		s, err := String.Decode(value, cs)
		if err != nil {
			return zero, err
		}

		return parse(s)
	}
}

// BigDecimal decodes an arbitrary-precision decimal column.
var BigDecimal Decoder[decimal.Decimal] = chain(decimal.NewFromString)

// BigInt decodes an arbitrary-precision integer column.
var BigInt Decoder[*big.Int] = chain(func(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("scan: %q is not a valid integer", s)
	}

	return n, nil
})

// Bool decodes PostgreSQL's single-character boolean representation, "t" or
// "f".
var Bool Decoder[bool] = chain(func(s string) (bool, error) {
	switch s {
	case "t":
		return true, nil
	case "f":
		return false, nil
	default:
		return false, fmt.Errorf("scan: %q is not a valid boolean", s)
	}
})

// ByteArray decodes PostgreSQL's bytea hex format, "\x" followed by
// lower-case hex pairs.
var ByteArray Decoder[[]byte] = chain(func(s string) ([]byte, error) {
	s, ok := strings.CutPrefix(s, `\x`)
	if !ok {
		return nil, fmt.Errorf("scan: byte array missing \\x prefix")
	}

	return hex.DecodeString(s)
})

// Byte decodes a single-byte column, failing if the raw value is not
// exactly one byte long (per §9's resolution of the excess-payload open
// question).
var Byte Decoder[byte] = DecoderFunc[byte](func(value []byte, _ charset.Charset) (byte, error) {
	if len(value) != 1 {
		return 0, fmt.Errorf("scan: byte column has length %d, want 1", len(value))
	}

	return value[0], nil
})

// Char decodes a single-character column, failing if the charset-decoded
// text is not exactly one rune (per §9's resolution of the excess-payload
// open question).
var Char Decoder[rune] = chain(func(s string) (rune, error) {
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("scan: char column has %d runes, want 1", len(runes))
	}

	return runes[0], nil
})

// dateLayout is PostgreSQL's default textual date output format.
const dateLayout = "2006-01-02"

// Date decodes a calendar date column (yyyy-MM-dd) as UTC midnight.
var Date Decoder[time.Time] = chain(func(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
})

// Float64 decodes a double precision column.
var Float64 Decoder[float64] = chain(func(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
})

// Float32 decodes a single precision column.
var Float32 Decoder[float32] = chain(func(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
})

// Int32 decodes a 4-byte integer column.
var Int32 Decoder[int32] = chain(func(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
})

// Int64 decodes an 8-byte integer column.
var Int64 Decoder[int64] = chain(func(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
})

// Int16 decodes a 2-byte integer column.
var Int16 Decoder[int16] = chain(func(s string) (int16, error) {
	v, err := strconv.ParseInt(s, 10, 16)
	return int16(v), err
})
