package rascql

import (
	"github.com/lib/pq/oid"

	"github.com/jammerwock/rascql/pkg/buffer"
	pgerror "github.com/jammerwock/rascql/pkg/errors"
	"github.com/jammerwock/rascql/pkg/types"
)

// BackendMessage is the closed sum of messages a PostgreSQL server sends to
// a client.
type BackendMessage interface {
	isBackendMessage()
}

// DecodeBackend dispatches a single already-framed backend message body to
// its Message Model decoder by type byte. An unrecognized byte fails with
// UnsupportedMessageType.
func DecodeBackend(code byte, cs Charset, body []byte) (BackendMessage, error) {
	r := buffer.NewReader(body)

	switch types.BackendMessageType(code) {
	case types.BackendAuthentication:
		return decodeAuthenticationRequest(r)
	case types.BackendBackendKeyData:
		return decodeBackendKeyData(r)
	case types.BackendBindComplete:
		return BindComplete{}, nil
	case types.BackendCloseComplete:
		return CloseComplete{}, nil
	case types.BackendCommandComplete:
		return decodeCommandComplete(r, cs)
	case types.BackendCopyData:
		return CopyData{Data: append([]byte(nil), r.Msg...)}, nil
	case types.BackendCopyDone:
		return CopyDone{}, nil
	case types.BackendCopyInResponse:
		return decodeCopyResponse(r, copyIn)
	case types.BackendCopyOutResponse:
		return decodeCopyResponse(r, copyOut)
	case types.BackendCopyBothResponse:
		return decodeCopyResponse(r, copyBoth)
	case types.BackendDataRow:
		return decodeDataRow(r)
	case types.BackendEmptyQueryResponse:
		return EmptyQueryResponse{}, nil
	case types.BackendErrorResponse:
		return decodeErrorResponse(r, cs)
	case types.BackendFunctionCallResponse:
		return decodeFunctionCallResponse(r)
	case types.BackendNoData:
		return NoData{}, nil
	case types.BackendNoticeResponse:
		return decodeNoticeResponse(r, cs)
	case types.BackendNotificationResponse:
		return decodeNotificationResponse(r, cs)
	case types.BackendParameterDescription:
		return decodeParameterDescription(r)
	case types.BackendParameterStatus:
		return decodeParameterStatus(r, cs)
	case types.BackendParseComplete:
		return ParseComplete{}, nil
	case types.BackendPortalSuspended:
		return PortalSuspended{}, nil
	case types.BackendReadyForQuery:
		return decodeReadyForQuery(r)
	case types.BackendRowDescription:
		return decodeRowDescription(r, cs)
	default:
		return nil, pgerror.NewUnsupportedMessageType(code)
	}
}

// AuthKind is the sub-kind carried by an AuthenticationRequest.
type AuthKind int32

const (
	AuthOk                AuthKind = 0
	AuthKerberosV5        AuthKind = 2
	AuthCleartextPassword AuthKind = 3
	AuthMD5Password       AuthKind = 5
	AuthSCMCredential     AuthKind = 6
	AuthGSS               AuthKind = 7
	AuthGSSContinue       AuthKind = 8
	AuthSSPI              AuthKind = 9
)

// AuthenticationRequest asks the client to authenticate using the method
// named by Kind. Salt is populated only for AuthMD5Password; GSSData only
// for AuthGSSContinue.
type AuthenticationRequest struct {
	Kind    AuthKind
	Salt    [4]byte
	GSSData []byte
}

func (AuthenticationRequest) isBackendMessage() {}

func decodeAuthenticationRequest(r *buffer.Reader) (BackendMessage, error) {
	kind, err := r.Int32()
	if err != nil {
		return nil, err
	}

	switch AuthKind(kind) {
	case AuthOk, AuthKerberosV5, AuthCleartextPassword, AuthSCMCredential, AuthGSS, AuthSSPI:
		return AuthenticationRequest{Kind: AuthKind(kind)}, nil
	case AuthMD5Password:
		salt, err := r.Bytes(4)
		if err != nil {
			return nil, err
		}

		var s [4]byte
		copy(s[:], salt)
		return AuthenticationRequest{Kind: AuthMD5Password, Salt: s}, nil
	case AuthGSSContinue:
		data, err := r.Bytes(r.Remaining())
		if err != nil {
			return nil, err
		}

		return AuthenticationRequest{Kind: AuthGSSContinue, GSSData: append([]byte(nil), data...)}, nil
	default:
		return nil, pgerror.NewUnsupportedAuthenticationMethod(kind)
	}
}

// BackendKeyData carries the process ID and secret key used by
// CancelRequest.
type BackendKeyData struct {
	ProcessID int32
	SecretKey int32
}

func (BackendKeyData) isBackendMessage() {}

func decodeBackendKeyData(r *buffer.Reader) (BackendMessage, error) {
	pid, err := r.Int32()
	if err != nil {
		return nil, err
	}

	secret, err := r.Int32()
	if err != nil {
		return nil, err
	}

	return BackendKeyData{ProcessID: pid, SecretKey: secret}, nil
}

// BindComplete acknowledges a successful Bind.
type BindComplete struct{}

func (BindComplete) isBackendMessage() {}

// CloseComplete acknowledges a successful Close.
type CloseComplete struct{}

func (CloseComplete) isBackendMessage() {}

// CommandComplete reports the completion of an SQL command and its result
// tag, classified per Scenario H into OIDWithRows, RowsAffected, or
// NameOnly.
type CommandComplete struct {
	Tag CommandTag
}

func (CommandComplete) isBackendMessage() {}

func decodeCommandComplete(r *buffer.Reader, cs Charset) (BackendMessage, error) {
	tag, err := r.CString(cs)
	if err != nil {
		return nil, err
	}

	return CommandComplete{Tag: parseCommandTag(tag)}, nil
}

// CopyData carries one chunk of COPY subprotocol payload in either
// direction.
type CopyData struct {
	Data []byte
}

func (CopyData) isBackendMessage() {}

// CopyDone signals successful completion of a COPY sequence.
type CopyDone struct{}

func (CopyDone) isBackendMessage() {}

type copyDirection int

const (
	copyIn copyDirection = iota
	copyOut
	copyBoth
)

// CopyInResponse begins a COPY FROM STDIN sequence.
type CopyInResponse struct {
	OverallFormat FormatCode
	ColumnFormats []FormatCode
}

func (CopyInResponse) isBackendMessage() {}

// CopyOutResponse begins a COPY TO STDOUT sequence.
type CopyOutResponse struct {
	OverallFormat FormatCode
	ColumnFormats []FormatCode
}

func (CopyOutResponse) isBackendMessage() {}

// CopyBothResponse begins a bidirectional COPY sequence, used for streaming
// replication.
type CopyBothResponse struct {
	OverallFormat FormatCode
	ColumnFormats []FormatCode
}

func (CopyBothResponse) isBackendMessage() {}

func decodeCopyResponse(r *buffer.Reader, direction copyDirection) (BackendMessage, error) {
	overallByte, err := r.Byte()
	if err != nil {
		return nil, err
	}

	overall, err := decodeFormatCode(int16(overallByte))
	if err != nil {
		return nil, err
	}

	count, err := r.Int16()
	if err != nil {
		return nil, err
	}

	formats, err := decodeFieldFormats(r, int(count))
	if err != nil {
		return nil, err
	}

	if overall == FormatText {
		var binaryColumns []int16
		for i, f := range formats {
			if f == FormatBinary {
				binaryColumns = append(binaryColumns, int16(i))
			}
		}

		if len(binaryColumns) > 0 {
			return nil, pgerror.NewUnexpectedBinaryColumnFormat(binaryColumns)
		}
	}

	switch direction {
	case copyIn:
		return CopyInResponse{OverallFormat: overall, ColumnFormats: formats}, nil
	case copyOut:
		return CopyOutResponse{OverallFormat: overall, ColumnFormats: formats}, nil
	default:
		return CopyBothResponse{OverallFormat: overall, ColumnFormats: formats}, nil
	}
}

// DataRow carries one row's worth of column values. A nil entry in Columns
// represents SQL NULL (encoded on the wire as a length of -1).
type DataRow struct {
	Columns [][]byte
}

func (DataRow) isBackendMessage() {}

func decodeDataRow(r *buffer.Reader) (BackendMessage, error) {
	count, err := r.Int16()
	if err != nil {
		return nil, err
	}

	columns := make([][]byte, count)
	for i := range columns {
		length, err := r.Int32()
		if err != nil {
			return nil, err
		}

		value, err := r.Bytes(int(length))
		if err != nil {
			return nil, err
		}

		if value != nil {
			value = append([]byte(nil), value...)
		}

		columns[i] = value
	}

	return DataRow{Columns: columns}, nil
}

// EmptyQueryResponse is sent in response to an empty query string.
type EmptyQueryResponse struct{}

func (EmptyQueryResponse) isBackendMessage() {}

// ErrorResponse reports a fatal server error.
type ErrorResponse struct {
	Fields ResponseFields
}

func (ErrorResponse) isBackendMessage() {}

// Err decorates the response's fields into a Go error via the pkg/errors
// chain (severity, detail, hint, source), suitable for pgerror.Flatten or
// for returning to a caller that surfaced a query error.
func (e ErrorResponse) Err() error {
	return e.Fields.asError()
}

func decodeErrorResponse(r *buffer.Reader, cs Charset) (BackendMessage, error) {
	fields, err := decodeResponseFields(r, cs)
	if err != nil {
		return nil, err
	}

	return ErrorResponse{Fields: fields}, nil
}

// FunctionCallResponse carries the result of a FunctionCall invocation. A
// nil Value represents SQL NULL.
type FunctionCallResponse struct {
	Value []byte
}

func (FunctionCallResponse) isBackendMessage() {}

func decodeFunctionCallResponse(r *buffer.Reader) (BackendMessage, error) {
	length, err := r.Int32()
	if err != nil {
		return nil, err
	}

	value, err := r.Bytes(int(length))
	if err != nil {
		return nil, err
	}

	if value != nil {
		value = append([]byte(nil), value...)
	}

	return FunctionCallResponse{Value: value}, nil
}

// NoData indicates a Describe targeted a statement with no result columns.
type NoData struct{}

func (NoData) isBackendMessage() {}

// NoticeResponse reports a non-fatal server notice.
type NoticeResponse struct {
	Fields ResponseFields
}

func (NoticeResponse) isBackendMessage() {}

// Err decorates the notice's fields into a Go error via the pkg/errors
// chain, the same way ErrorResponse.Err does, for callers that want to log
// a notice through the same pgerror.Flatten path as a real error.
func (n NoticeResponse) Err() error {
	return n.Fields.asError()
}

func decodeNoticeResponse(r *buffer.Reader, cs Charset) (BackendMessage, error) {
	fields, err := decodeResponseFields(r, cs)
	if err != nil {
		return nil, err
	}

	return NoticeResponse{Fields: fields}, nil
}

// NotificationResponse delivers an asynchronous LISTEN/NOTIFY event.
type NotificationResponse struct {
	ProcessID int32
	Channel   string
	Payload   string
}

func (NotificationResponse) isBackendMessage() {}

func decodeNotificationResponse(r *buffer.Reader, cs Charset) (BackendMessage, error) {
	pid, err := r.Int32()
	if err != nil {
		return nil, err
	}

	channel, err := r.CString(cs)
	if err != nil {
		return nil, err
	}

	payload, err := r.CString(cs)
	if err != nil {
		return nil, err
	}

	return NotificationResponse{ProcessID: pid, Channel: channel, Payload: payload}, nil
}

// ParameterDescription lists the type OIDs of a prepared statement's
// parameters.
type ParameterDescription struct {
	ParameterTypes []oid.Oid
}

func (ParameterDescription) isBackendMessage() {}

func decodeParameterDescription(r *buffer.Reader) (BackendMessage, error) {
	count, err := r.Int16()
	if err != nil {
		return nil, err
	}

	oids := make([]oid.Oid, count)
	for i := range oids {
		v, err := r.Uint32()
		if err != nil {
			return nil, err
		}

		oids[i] = oid.Oid(v)
	}

	return ParameterDescription{ParameterTypes: oids}, nil
}

// ParameterStatus reports a runtime parameter's current value, sent
// whenever it changes.
type ParameterStatus struct {
	Name  string
	Value string
}

func (ParameterStatus) isBackendMessage() {}

func decodeParameterStatus(r *buffer.Reader, cs Charset) (BackendMessage, error) {
	name, err := r.CString(cs)
	if err != nil {
		return nil, err
	}

	value, err := r.CString(cs)
	if err != nil {
		return nil, err
	}

	return ParameterStatus{Name: name, Value: value}, nil
}

// ParseComplete acknowledges a successful Parse.
type ParseComplete struct{}

func (ParseComplete) isBackendMessage() {}

// PortalSuspended is sent when an Execute's row limit is reached before the
// portal finishes producing rows.
type PortalSuspended struct{}

func (PortalSuspended) isBackendMessage() {}

// TransactionStatus reports the connection's transaction state as of a
// ReadyForQuery message.
type TransactionStatus byte

const (
	TransactionIdle   TransactionStatus = 'I'
	TransactionOpen   TransactionStatus = 'T'
	TransactionFailed TransactionStatus = 'E'
)

func (s TransactionStatus) String() string {
	switch s {
	case TransactionIdle:
		return "Idle"
	case TransactionOpen:
		return "Open"
	case TransactionFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// ReadyForQuery signals the server is ready for a new command, reporting
// the connection's transaction status.
type ReadyForQuery struct {
	Status TransactionStatus
}

func (ReadyForQuery) isBackendMessage() {}

func decodeReadyForQuery(r *buffer.Reader) (BackendMessage, error) {
	b, err := r.Byte()
	if err != nil {
		return nil, err
	}

	switch TransactionStatus(b) {
	case TransactionIdle, TransactionOpen, TransactionFailed:
		return ReadyForQuery{Status: TransactionStatus(b)}, nil
	default:
		return nil, pgerror.NewUnsupportedTransactionStatus(b)
	}
}

// FieldDescription describes one column of a RowDescription.
type FieldDescription struct {
	Name         string
	TableOID     oid.Oid
	ColumnAttr   int16
	DataTypeOID  oid.Oid
	DataTypeSize int16
	TypeModifier int32
	Format       FormatCode
}

// RowDescription describes the columns of the rows that follow.
type RowDescription struct {
	Fields []FieldDescription
}

func (RowDescription) isBackendMessage() {}

func decodeRowDescription(r *buffer.Reader, cs Charset) (BackendMessage, error) {
	count, err := r.Int16()
	if err != nil {
		return nil, err
	}

	fields := make([]FieldDescription, count)
	for i := range fields {
		name, err := r.CString(cs)
		if err != nil {
			return nil, err
		}

		tableOID, err := r.Uint32()
		if err != nil {
			return nil, err
		}

		columnAttr, err := r.Int16()
		if err != nil {
			return nil, err
		}

		dataTypeOID, err := r.Uint32()
		if err != nil {
			return nil, err
		}

		dataTypeSize, err := r.Int16()
		if err != nil {
			return nil, err
		}

		typeModifier, err := r.Int32()
		if err != nil {
			return nil, err
		}

		formatRaw, err := r.Int16()
		if err != nil {
			return nil, err
		}

		// RowDescription.Format may legitimately be 0 without being a valid
		// FormatCode decode target: a describe with no prior bind reports
		// format 0 meaning "unresolved", not "text" (§9 open question). It is
		// accepted here rather than routed through decodeFormatCode.
		fields[i] = FieldDescription{
			Name:         name,
			TableOID:     oid.Oid(tableOID),
			ColumnAttr:   columnAttr,
			DataTypeOID:  oid.Oid(dataTypeOID),
			DataTypeSize: dataTypeSize,
			TypeModifier: typeModifier,
			Format:       FormatCode(formatRaw),
		}
	}

	return RowDescription{Fields: fields}, nil
}
