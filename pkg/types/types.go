package types

// FrontendMessageType is the type byte a non-version-zero frontend message is
// framed with. StartupMessage, SSLRequest, and CancelRequest carry no type
// byte at all (they are the version-zero messages).
type FrontendMessageType byte

// BackendMessageType is the type byte every backend message is framed with.
type BackendMessageType byte

// DescriptorKind distinguishes a Close/Describe target: a portal or a
// prepared statement.
type DescriptorKind byte

// http://www.postgresql.org/docs/current/static/protocol-message-formats.html
const (
	FrontendBind         FrontendMessageType = 'B'
	FrontendClose        FrontendMessageType = 'C'
	FrontendCopyData     FrontendMessageType = 'd'
	FrontendCopyDone     FrontendMessageType = 'c'
	FrontendCopyFail     FrontendMessageType = 'f'
	FrontendDescribe     FrontendMessageType = 'D'
	FrontendExecute      FrontendMessageType = 'E'
	FrontendFlush        FrontendMessageType = 'H'
	FrontendFunctionCall FrontendMessageType = 'F'
	FrontendParse        FrontendMessageType = 'P'
	FrontendPassword     FrontendMessageType = 'p'
	FrontendQuery        FrontendMessageType = 'Q'
	FrontendSync         FrontendMessageType = 'S'
	FrontendTerminate    FrontendMessageType = 'X'

	BackendAuthentication       BackendMessageType = 'R'
	BackendBackendKeyData       BackendMessageType = 'K'
	BackendBindComplete         BackendMessageType = '2'
	BackendCloseComplete        BackendMessageType = '3'
	BackendCommandComplete      BackendMessageType = 'C'
	BackendCopyData             BackendMessageType = 'd'
	BackendCopyDone             BackendMessageType = 'c'
	BackendCopyInResponse       BackendMessageType = 'G'
	BackendCopyOutResponse      BackendMessageType = 'H'
	BackendCopyBothResponse     BackendMessageType = 'W'
	BackendDataRow              BackendMessageType = 'D'
	BackendEmptyQueryResponse   BackendMessageType = 'I'
	BackendErrorResponse        BackendMessageType = 'E'
	BackendFunctionCallResponse BackendMessageType = 'V'
	BackendNoData               BackendMessageType = 'n'
	BackendNoticeResponse       BackendMessageType = 'N'
	BackendNotificationResponse BackendMessageType = 'A'
	BackendParameterDescription BackendMessageType = 't'
	BackendParameterStatus      BackendMessageType = 'S'
	BackendParseComplete        BackendMessageType = '1'
	BackendPortalSuspended      BackendMessageType = 's'
	BackendReadyForQuery        BackendMessageType = 'Z'
	BackendRowDescription       BackendMessageType = 'T'

	DescriptorPortal    DescriptorKind = 'P'
	DescriptorStatement DescriptorKind = 'S'
)

func (t FrontendMessageType) String() string {
	switch t {
	case FrontendBind:
		return "Bind"
	case FrontendClose:
		return "Close"
	case FrontendCopyData:
		return "CopyData"
	case FrontendCopyDone:
		return "CopyDone"
	case FrontendCopyFail:
		return "CopyFail"
	case FrontendDescribe:
		return "Describe"
	case FrontendExecute:
		return "Execute"
	case FrontendFlush:
		return "Flush"
	case FrontendFunctionCall:
		return "FunctionCall"
	case FrontendParse:
		return "Parse"
	case FrontendPassword:
		return "PasswordMessage"
	case FrontendQuery:
		return "Query"
	case FrontendSync:
		return "Sync"
	case FrontendTerminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

func (t BackendMessageType) String() string {
	switch t {
	case BackendAuthentication:
		return "AuthenticationRequest"
	case BackendBackendKeyData:
		return "BackendKeyData"
	case BackendBindComplete:
		return "BindComplete"
	case BackendCloseComplete:
		return "CloseComplete"
	case BackendCommandComplete:
		return "CommandComplete"
	case BackendCopyData:
		return "CopyData"
	case BackendCopyDone:
		return "CopyDone"
	case BackendCopyInResponse:
		return "CopyInResponse"
	case BackendCopyOutResponse:
		return "CopyOutResponse"
	case BackendCopyBothResponse:
		return "CopyBothResponse"
	case BackendDataRow:
		return "DataRow"
	case BackendEmptyQueryResponse:
		return "EmptyQueryResponse"
	case BackendErrorResponse:
		return "ErrorResponse"
	case BackendFunctionCallResponse:
		return "FunctionCallResponse"
	case BackendNoData:
		return "NoData"
	case BackendNoticeResponse:
		return "NoticeResponse"
	case BackendNotificationResponse:
		return "NotificationResponse"
	case BackendParameterDescription:
		return "ParameterDescription"
	case BackendParameterStatus:
		return "ParameterStatus"
	case BackendParseComplete:
		return "ParseComplete"
	case BackendPortalSuspended:
		return "PortalSuspended"
	case BackendReadyForQuery:
		return "ReadyForQuery"
	case BackendRowDescription:
		return "RowDescription"
	default:
		return "Unknown"
	}
}

func (k DescriptorKind) String() string {
	switch k {
	case DescriptorPortal:
		return "Portal"
	case DescriptorStatement:
		return "Statement"
	default:
		return "Unknown"
	}
}
