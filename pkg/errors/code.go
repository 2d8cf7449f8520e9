package errors

import "errors"

// WithCode decorates the error with a CORE error code.
func WithCode(err error, code Code) error {
	if err == nil {
		return nil
	}

	return &withCode{cause: err, code: code}
}

// GetCode returns the CORE error code inside the given error. If no error
// code is found, Uncategorized is returned.
func GetCode(err error) (code Code) {
	code = Uncategorized
	if c, ok := err.(*withCode); ok {
		return c.code
	}

	if n := errors.Unwrap(err); n != nil {
		inner := GetCode(n)
		if inner != Uncategorized {
			return inner
		}
	}

	return code
}

type withCode struct {
	cause error
	code  Code
}

func (w *withCode) Error() string { return w.cause.Error() }
func (w *withCode) Unwrap() error { return w.cause }
