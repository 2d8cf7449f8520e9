package errors

// Code represents the kind of a decode-time error raised by the CORE. Unlike
// the full SQLSTATE catalogue a Postgres server maintains, a wire protocol
// client only needs to label its own, closed taxonomy of framing and
// decoding failures.
type Code string

const (
	// Uncategorized is returned by GetCode when no code has been attached.
	Uncategorized Code = "uncategorized"

	// MessageTooLong indicates a frame declared a content length exceeding
	// the configured maximum.
	MessageTooLong Code = "message_too_long"
	// UnsupportedMessageType indicates an unrecognized backend type byte.
	UnsupportedMessageType Code = "unsupported_message_type"
	// UnsupportedAuthenticationMethod indicates an unrecognized
	// AuthenticationRequest sub-kind.
	UnsupportedAuthenticationMethod Code = "unsupported_authentication_method"
	// UnsupportedSSLReply indicates a byte other than 'S'/'N' following a
	// SSLRequest.
	UnsupportedSSLReply Code = "unsupported_ssl_reply"
	// UnsupportedFormatType indicates a format tag other than 0/1.
	UnsupportedFormatType Code = "unsupported_format_type"
	// UnsupportedTransactionStatus indicates a ReadyForQuery status byte
	// other than 'I'/'T'/'E'.
	UnsupportedTransactionStatus Code = "unsupported_transaction_status"
	// UnexpectedBinaryColumnFormat indicates a CopyResponse declaring an
	// overall text format while one or more per-column formats are binary.
	UnexpectedBinaryColumnFormat Code = "unexpected_binary_column_format"
	// DataCorrupted indicates malformed framing: a missing NUL terminator,
	// fewer bytes remaining than a field requires, or a negative length
	// other than -1.
	DataCorrupted Code = "data_corrupted"
)
