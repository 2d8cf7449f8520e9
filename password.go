package rascql

import (
	"crypto/md5" //nolint:gosec // required by the PostgreSQL wire protocol, not used for security
	"encoding/hex"

	"github.com/jammerwock/rascql/pkg/buffer"
)

// Password is the payload of a PasswordMessage: either a cleartext value or
// an MD5-hashed challenge response (spec.md §3 Password). It writes directly
// into the PasswordMessage frame rather than producing its own framed bytes.
type Password interface {
	writeTo(w *buffer.Writer, cs Charset)
}

// ClearText is a PasswordMessage payload sent as-is, used when the server
// requested AuthenticationCleartextPassword.
type ClearText struct {
	Value string
}

func (p ClearText) writeTo(w *buffer.Writer, cs Charset) {
	w.CString(cs, p.Value)
}

// MD5 is a PasswordMessage payload computed in response to
// AuthenticationMD5Password: "md5" followed by the lower-case hex digest of
// md5(hex(md5(password+user)) + salt).
type MD5 struct {
	User     string
	Password string
	Salt     [4]byte
}

func (p MD5) writeTo(w *buffer.Writer, cs Charset) {
	w.CString(cs, p.hashed())
}

func (p MD5) hashed() string {
	return "md5" + md5HexWithSalt(p.Password, p.User, p.Salt)
}

func md5HexWithSalt(password, user string, salt [4]byte) string {
	inner := md5Hex([]byte(password + user))

	outer := make([]byte, 0, len(inner)+len(salt))
	outer = append(outer, inner...)
	outer = append(outer, salt[:]...)

	return md5Hex(outer)
}

func md5Hex(b []byte) string {
	sum := md5.Sum(b) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
