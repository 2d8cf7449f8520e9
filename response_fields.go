package rascql

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jammerwock/rascql/pkg/buffer"
	pgerror "github.com/jammerwock/rascql/pkg/errors"
)

// fieldTag identifies one tagged field inside an ErrorResponse or
// NoticeResponse body.
type fieldTag byte

const (
	tagSeverity         fieldTag = 'S'
	tagSQLState         fieldTag = 'C'
	tagMessage          fieldTag = 'M'
	tagDetail           fieldTag = 'D'
	tagHint             fieldTag = 'H'
	tagPosition         fieldTag = 'P'
	tagInternalPosition fieldTag = 'p'
	tagInternalQuery    fieldTag = 'q'
	tagWhere            fieldTag = 'W'
	tagSchema           fieldTag = 's'
	tagTable            fieldTag = 't'
	tagColumn           fieldTag = 'c'
	tagDataType         fieldTag = 'd'
	tagConstraint       fieldTag = 'n'
	tagFile             fieldTag = 'F'
	tagLine             fieldTag = 'L'
	tagRoutine          fieldTag = 'R'
)

// ResponseFields is the parsed, ordered set of tagged fields carried by an
// ErrorResponse or NoticeResponse (spec.md §3 ResponseFields). Unrecognized
// tags are silently ignored per §3.
type ResponseFields struct {
	Severity         string
	SQLState         string
	Message          string
	Detail           string
	Hint             string
	Position         int
	InternalPosition int
	InternalQuery    string
	Where            []string
	Schema           string
	Table            string
	Column           string
	DataType         string
	Constraint       string
	File             string
	Line             int
	Routine          string
}

// decodeResponseFields reads tagged fields until the terminating NUL tag
// byte.
func decodeResponseFields(r *buffer.Reader, cs Charset) (ResponseFields, error) {
	var fields ResponseFields

	for {
		tag, err := r.Byte()
		if err != nil {
			return fields, err
		}

		if tag == 0 {
			return fields, nil
		}

		value, err := r.CString(cs)
		if err != nil {
			return fields, err
		}

		switch fieldTag(tag) {
		case tagSeverity:
			fields.Severity = value
		case tagSQLState:
			fields.SQLState = value
		case tagMessage:
			fields.Message = value
		case tagDetail:
			fields.Detail = value
		case tagHint:
			fields.Hint = value
		case tagPosition:
			fields.Position = atoiOrZero(value)
		case tagInternalPosition:
			fields.InternalPosition = atoiOrZero(value)
		case tagInternalQuery:
			fields.InternalQuery = value
		case tagWhere:
			fields.Where = strings.Split(value, "\n")
		case tagSchema:
			fields.Schema = value
		case tagTable:
			fields.Table = value
		case tagColumn:
			fields.Column = value
		case tagDataType:
			fields.DataType = value
		case tagConstraint:
			fields.Constraint = value
		case tagFile:
			fields.File = value
		case tagLine:
			fields.Line = atoiOrZero(value)
		case tagRoutine:
			fields.Routine = value
		}
	}
}

// asError decorates the field set's Message with its Severity, Detail, Hint
// and File/Line/Routine source, via the pkg/errors decorators, so a caller
// can pgerror.Flatten it back into a single struct without re-walking
// ResponseFields itself.
func (f ResponseFields) asError() error {
	err := pgerror.WithSeverity(errors.New(f.Message), pgerror.Severity(f.Severity))

	if f.Detail != "" {
		err = pgerror.WithDetail(err, f.Detail)
	}

	if f.Hint != "" {
		err = pgerror.WithHint(err, f.Hint)
	}

	if f.File != "" {
		err = pgerror.WithSource(err, f.File, int32(f.Line), f.Routine)
	}

	return err
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return v
}
