package buffer

import (
	"errors"
	"fmt"
	"reflect"

	pgerror "github.com/jammerwock/rascql/pkg/errors"
)

// ErrMissingNulTerminator is thrown when no NUL terminator is found when
// interpreting a message field as a string.
var ErrMissingNulTerminator = errors.New("NUL terminator not found")

// NewMissingNulTerminator constructs a new error wrapping
// ErrMissingNulTerminator with additional metadata.
func NewMissingNulTerminator() error {
	return pgerror.WithSeverity(pgerror.WithCode(ErrMissingNulTerminator, pgerror.DataCorrupted), pgerror.LevelFatal)
}

// ErrInsufficientData is thrown when there is insufficient data remaining in
// a message to unmarshal into a given field.
var ErrInsufficientData = errors.New("insufficient data")

// NewInsufficientData constructs a new error wrapping ErrInsufficientData
// with additional metadata.
func NewInsufficientData(length int) error {
	err := fmt.Errorf("length: %d %w", length, ErrInsufficientData)
	return pgerror.WithSeverity(pgerror.WithCode(err, pgerror.DataCorrupted), pgerror.LevelFatal)
}

// ErrIllFormedLength is thrown when a length-prefixed field declares a
// negative length other than -1 (the sole NULL sentinel recognized by the
// wire protocol).
var ErrIllFormedLength = errors.New("ill-formed negative length")

// NewIllFormedLength constructs a new error wrapping ErrIllFormedLength with
// the offending declared length.
func NewIllFormedLength(length int) error {
	err := fmt.Errorf("length: %d %w", length, ErrIllFormedLength)
	return pgerror.WithSeverity(pgerror.WithCode(err, pgerror.DataCorrupted), pgerror.LevelFatal)
}

// ErrMessageSizeExceeded is thrown when a frame's content length exceeds the
// configured maximum.
var ErrMessageSizeExceeded = MessageSizeExceeded{Message: "maximum message size exceeded"}

// MessageSizeExceeded carries the offending message's type byte, its
// declared content length, and the configured maximum.
type MessageSizeExceeded struct {
	Message string
	Code    byte
	Size    int
	Max     int
}

func (err MessageSizeExceeded) Error() string {
	return err.Message
}

func (err MessageSizeExceeded) Is(target error) bool {
	return reflect.TypeOf(target) == reflect.TypeOf(err)
}

// NewMessageSizeExceeded constructs a new error wrapping
// ErrMessageSizeExceeded with additional metadata.
func NewMessageSizeExceeded(code byte, size, max int) error {
	err := MessageSizeExceeded{
		Message: fmt.Sprintf("message size %d, bigger than maximum allowed message size %d", size, max),
		Code:    code,
		Size:    size,
		Max:     max,
	}

	return pgerror.WithSeverity(pgerror.WithCode(err, pgerror.MessageTooLong), pgerror.LevelError)
}

// UnwrapMessageSizeExceeded attempts to unwrap the given error as
// MessageSizeExceeded. A boolean indicates whether the error contained a
// MessageSizeExceeded.
func UnwrapMessageSizeExceeded(err error) (result MessageSizeExceeded, _ bool) {
	return result, errors.As(err, &result)
}
