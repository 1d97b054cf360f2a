package transaction

import "encoding/base64"

// base64Encode/base64Decode wrap the standard encoder: base64 is a pure
// text-transform with no domain semantics, not something any example
// dependency in the witness core's stack claims to own.
func base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func base64Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
