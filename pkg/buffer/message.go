package buffer

// DefaultMaxMessageSize is the default upper bound on a single message's
// content length (excluding the 4-byte length field itself) when the caller
// does not configure one explicitly.
const DefaultMaxMessageSize = 1 << 24 // 16777216 bytes
