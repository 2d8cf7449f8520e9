package rascql

import (
	"sort"

	"github.com/lib/pq/oid"

	"github.com/jammerwock/rascql/pkg/buffer"
	"github.com/jammerwock/rascql/pkg/types"
)

// FrontendMessage is the closed sum of messages a client sends to a
// PostgreSQL server. Encode is a pure function: it never touches a
// transport, it only produces the bytes the caller should write.
type FrontendMessage interface {
	Encode(cs Charset) ([]byte, error)
}

// ProtocolVersion is the wire value identifying protocol 3.0, the version
// header every StartupMessage carries.
const ProtocolVersion int32 = int32(types.Version30)

// emptyMessageCache holds the one-time-built 5-byte encoding of every
// frontend message with no payload, keyed by type byte.
var emptyMessageCache = func() map[types.FrontendMessageType][]byte {
	kinds := []types.FrontendMessageType{
		types.FrontendCopyDone,
		types.FrontendFlush,
		types.FrontendSync,
		types.FrontendTerminate,
	}

	cache := make(map[types.FrontendMessageType][]byte, len(kinds))
	for _, t := range kinds {
		cache[t] = []byte{byte(t), 0, 0, 0, 4}
	}

	return cache
}()

// emptyMessage returns the cached 5-byte encoding of a typed message with no
// payload, per §3's "Empty messages encode to a cached 5-byte constant."
func emptyMessage(t types.FrontendMessageType) []byte {
	return emptyMessageCache[t]
}

// Descriptor names a Close/Describe target: a portal or a prepared
// statement. An empty Name is the canonical "unnamed" destination.
type Descriptor struct {
	Kind types.DescriptorKind
	Name string
}

func (d Descriptor) encode(w *buffer.Writer, cs Charset) {
	w.Byte(byte(d.Kind))
	w.CString(cs, d.Name)
}

// Parameter is one bound value of a Bind or FunctionCall invocation. A nil
// Value encodes as SQL NULL (a length of -1).
type Parameter struct {
	Format FormatCode
	Value  []byte
}

func encodeParameters(w *buffer.Writer, params []Parameter) {
	w.Int16(int16(len(params)))
	for _, p := range params {
		w.Int16(int16(p.Format))
	}

	for _, p := range params {
		if p.Value == nil {
			w.Int32(-1)
			continue
		}

		w.Int32(int32(len(p.Value)))
		w.Bytes(p.Value)
	}
}

// StartupMessage is the first message sent on a freshly opened connection.
// User is always present in the encoded output, overriding any duplicate
// supplied via Parameters.
type StartupMessage struct {
	User       string
	Parameters map[string]string
}

func (m StartupMessage) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.StartUntyped()
	w.Int32(ProtocolVersion)

	params := make(map[string]string, len(m.Parameters)+1)
	for k, v := range m.Parameters {
		params[k] = v
	}
	params["user"] = m.User

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		w.CString(cs, k)
		w.CString(cs, params[k])
	}

	w.NullTerminate()
	return w.End()
}

// SSLRequest asks the server whether it is willing to negotiate TLS before
// any other message is sent.
type SSLRequest struct{}

func (m SSLRequest) Encode(_ Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.StartUntyped()
	w.Int32(int32(types.VersionSSLRequest))
	return w.End()
}

// CancelRequest asks the server to cancel the query running on the
// connection identified by ProcessID/SecretKey, sent over a fresh
// connection distinct from the one being cancelled.
type CancelRequest struct {
	ProcessID int32
	SecretKey int32
}

func (m CancelRequest) Encode(_ Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.StartUntyped()
	w.Int32(int32(types.VersionCancel))
	w.Int32(m.ProcessID)
	w.Int32(m.SecretKey)
	return w.End()
}

// Bind binds parameter values to a named or unnamed prepared statement,
// creating a named or unnamed portal.
type Bind struct {
	DestinationPortal string
	SourceStatement   string
	Parameters        []Parameter
	ResultFormats     FieldFormats
}

func (m Bind) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendBind))
	w.CString(cs, m.DestinationPortal)
	w.CString(cs, m.SourceStatement)
	encodeParameters(w, m.Parameters)
	m.ResultFormats.encode(w)
	return w.End()
}

// Close destroys a named or unnamed portal or prepared statement.
type Close struct {
	Target Descriptor
}

func (m Close) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendClose))
	m.Target.encode(w, cs)
	return w.End()
}

// CopyData carries one chunk of COPY subprotocol payload in either
// direction.
type CopyData struct {
	Data []byte
}

func (m CopyData) Encode(_ Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendCopyData))
	w.Bytes(m.Data)
	return w.End()
}

// CopyDone signals successful completion of a COPY sequence.
type CopyDone struct{}

func (m CopyDone) Encode(_ Charset) ([]byte, error) {
	return emptyMessage(types.FrontendCopyDone), nil
}

// CopyFail aborts a COPY sequence with an explanatory message.
type CopyFail struct {
	Message string
}

func (m CopyFail) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendCopyFail))
	w.CString(cs, m.Message)
	return w.End()
}

// Describe requests a description of a named or unnamed portal or prepared
// statement.
type Describe struct {
	Target Descriptor
}

func (m Describe) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendDescribe))
	m.Target.encode(w, cs)
	return w.End()
}

// Execute runs a bound portal, returning at most MaxRows rows (0 meaning
// unlimited).
type Execute struct {
	Portal  string
	MaxRows int32
}

func (m Execute) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendExecute))
	w.CString(cs, m.Portal)
	w.Int32(m.MaxRows)
	return w.End()
}

// Flush asks the server to deliver any pending output without ending the
// current command chain.
type Flush struct{}

func (m Flush) Encode(_ Charset) ([]byte, error) {
	return emptyMessage(types.FrontendFlush), nil
}

// FunctionCall invokes a server-side function by OID (the legacy function
// call protocol, distinct from Parse/Bind/Execute).
type FunctionCall struct {
	OID          oid.Oid
	Parameters   []Parameter
	ResultFormat FormatCode
}

func (m FunctionCall) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendFunctionCall))
	w.Uint32(uint32(m.OID))
	encodeParameters(w, m.Parameters)
	w.Int16(int16(m.ResultFormat))
	return w.End()
}

// Parse creates a named or unnamed prepared statement from query text, with
// an explicit (possibly empty) sequence of parameter type OIDs.
type Parse struct {
	DestinationStatement string
	Query                string
	ParameterTypes       []oid.Oid
}

func (m Parse) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendParse))
	w.CString(cs, m.DestinationStatement)
	w.CString(cs, m.Query)
	w.Int16(int16(len(m.ParameterTypes)))
	for _, paramType := range m.ParameterTypes {
		w.Uint32(uint32(paramType))
	}
	return w.End()
}

// PasswordMessage carries a client's response to an authentication
// challenge.
type PasswordMessage struct {
	Payload Password
}

func (m PasswordMessage) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendPassword))
	m.Payload.writeTo(w, cs)
	return w.End()
}

// Query runs a simple-query-protocol command.
type Query struct {
	Text string
}

func (m Query) Encode(cs Charset) ([]byte, error) {
	w := buffer.NewWriter()
	w.Start(byte(types.FrontendQuery))
	w.CString(cs, m.Text)
	return w.End()
}

// Sync marks the end of an extended-query command chain.
type Sync struct{}

func (m Sync) Encode(_ Charset) ([]byte, error) {
	return emptyMessage(types.FrontendSync), nil
}

// Terminate cleanly ends the connection.
type Terminate struct{}

func (m Terminate) Encode(_ Charset) ([]byte, error) {
	return emptyMessage(types.FrontendTerminate), nil
}
