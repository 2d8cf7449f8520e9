package rascql

import pgerror "github.com/jammerwock/rascql/pkg/errors"

// SSLReply is the single-byte response a server sends in reply to an
// SSLRequest, before any further protocol messages are exchanged.
type SSLReply int

const (
	SSLAccepted SSLReply = iota
	SSLRejected
)

func (r SSLReply) String() string {
	switch r {
	case SSLAccepted:
		return "Accepted"
	case SSLRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// DecodeSSLReply interprets the single byte a server sends in reply to an
// SSLRequest: 'S' means the server accepted and a TLS handshake should
// begin, 'N' means it was rejected and the connection continues in the
// clear. Any other byte is a protocol violation.
func DecodeSSLReply(b byte) (SSLReply, error) {
	switch b {
	case 'S':
		return SSLAccepted, nil
	case 'N':
		return SSLRejected, nil
	default:
		return 0, pgerror.NewUnsupportedSSLReply(b)
	}
}
