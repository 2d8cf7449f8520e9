package rascql

import (
	"github.com/jammerwock/rascql/pkg/buffer"
	pgerror "github.com/jammerwock/rascql/pkg/errors"
)

// FormatCode is the wire tag distinguishing a textual column value from a
// binary one.
type FormatCode int16

const (
	FormatText   FormatCode = 0
	FormatBinary FormatCode = 1
)

func (f FormatCode) String() string {
	switch f {
	case FormatText:
		return "Text"
	case FormatBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

func decodeFormatCode(v int16) (FormatCode, error) {
	switch FormatCode(v) {
	case FormatText, FormatBinary:
		return FormatCode(v), nil
	default:
		return 0, pgerror.NewUnsupportedFormatType(v)
	}
}

// FieldFormats describes the per-column result format negotiated for a
// Bind, matching §3's `[0:i16]` (absent), `[1:i16][format:i16]`
// (Matched — every column shares one format) or `[n:i16][formats:i16...]`
// (Mixed) wire shapes.
type FieldFormats struct {
	matched bool
	format  FormatCode
	formats []FormatCode
}

// DefaultFieldFormats returns the absent/default field-format selection,
// encoded as a zero-length list.
func DefaultFieldFormats() FieldFormats {
	return FieldFormats{}
}

// MatchedFieldFormats returns a FieldFormats where every result column uses
// the same format.
func MatchedFieldFormats(format FormatCode) FieldFormats {
	return FieldFormats{matched: true, format: format}
}

// MixedFieldFormats returns a FieldFormats with one format per column.
func MixedFieldFormats(formats []FormatCode) FieldFormats {
	return FieldFormats{formats: formats}
}

func (f FieldFormats) encode(w *buffer.Writer) {
	switch {
	case f.matched:
		w.Int16(1)
		w.Int16(int16(f.format))
	case len(f.formats) > 0:
		w.Int16(int16(len(f.formats)))
		for _, format := range f.formats {
			w.Int16(int16(format))
		}
	default:
		w.Int16(0)
	}
}

// decodeFieldFormats decodes the per-column format sequence used by
// CopyInResponse/CopyOutResponse/CopyBothResponse, returning one FormatCode
// per column.
func decodeFieldFormats(r *buffer.Reader, count int) ([]FormatCode, error) {
	formats := make([]FormatCode, count)

	for i := 0; i < count; i++ {
		v, err := r.Int16()
		if err != nil {
			return nil, err
		}

		format, err := decodeFormatCode(v)
		if err != nil {
			return nil, err
		}

		formats[i] = format
	}

	return formats, nil
}
