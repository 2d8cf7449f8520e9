package errors

import "fmt"

// NewUnsupportedMessageType constructs the error raised when a backend
// frame's type byte is not in the closed dispatch table.
func NewUnsupportedMessageType(code byte) error {
	err := fmt.Errorf("unsupported backend message type %q", code)
	return WithSeverity(WithCode(err, UnsupportedMessageType), LevelFatal)
}

// NewUnsupportedAuthenticationMethod constructs the error raised when an
// AuthenticationRequest's sub-kind is not one of the recognized values.
func NewUnsupportedAuthenticationMethod(subkind int32) error {
	err := fmt.Errorf("unsupported authentication method %d", subkind)
	return WithSeverity(WithCode(err, UnsupportedAuthenticationMethod), LevelFatal)
}

// NewUnsupportedSSLReply constructs the error raised when the single byte
// reply following SSLRequest is neither 'S' nor 'N'.
func NewUnsupportedSSLReply(reply byte) error {
	err := fmt.Errorf("unsupported SSL reply %q", reply)
	return WithSeverity(WithCode(err, UnsupportedSSLReply), LevelFatal)
}

// NewUnsupportedFormatType constructs the error raised when a format tag is
// neither 0 (text) nor 1 (binary).
func NewUnsupportedFormatType(format int16) error {
	err := fmt.Errorf("unsupported format type %d", format)
	return WithSeverity(WithCode(err, UnsupportedFormatType), LevelFatal)
}

// NewUnsupportedTransactionStatus constructs the error raised when
// ReadyForQuery's status byte is not one of 'I', 'T', 'E'.
func NewUnsupportedTransactionStatus(status byte) error {
	err := fmt.Errorf("unsupported transaction status %q", status)
	return WithSeverity(WithCode(err, UnsupportedTransactionStatus), LevelFatal)
}

// NewUnexpectedBinaryColumnFormat constructs the error raised when a
// CopyResponse declares an overall text format while one or more
// per-column formats are binary, naming the offending column indices.
func NewUnexpectedBinaryColumnFormat(columns []int16) error {
	err := fmt.Errorf("unexpected binary column format at columns %v", columns)
	return WithSeverity(WithCode(err, UnexpectedBinaryColumnFormat), LevelError)
}
