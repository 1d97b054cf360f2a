package util

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nan01ab/neo/pkg/io"
)

// Uint256Size is the length in bytes of a Uint256.
const Uint256Size = 32

// Uint256 is a 32-byte fixed size array used for transaction hashes,
// following the same little-endian-wire / big-endian-display convention
// as Uint160.
type Uint256 [Uint256Size]byte

// Uint256DecodeStringBE decodes a big-endian (display order) hex string,
// optionally 0x-prefixed.
func Uint256DecodeStringBE(s string) (u Uint256, err error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != Uint256Size*2 {
		return u, fmt.Errorf("expected string size of %d got %d", Uint256Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, err
	}
	return Uint256DecodeBytesBE(b)
}

// Uint256DecodeBytesBE decodes a Uint256 from big-endian (display order)
// bytes.
func Uint256DecodeBytesBE(b []byte) (u Uint256, err error) {
	if len(b) != Uint256Size {
		return u, fmt.Errorf("expected []byte of size %d got %d", Uint256Size, len(b))
	}
	copy(u[:], ArrayReverse(b))
	return u, nil
}

// Uint256DecodeBytesLE decodes a Uint256 from little-endian (wire order)
// bytes.
func Uint256DecodeBytesLE(b []byte) (u Uint256, err error) {
	if len(b) != Uint256Size {
		return u, fmt.Errorf("expected []byte of size %d got %d", Uint256Size, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// BytesBE returns the big-endian (display-order) byte representation.
func (u Uint256) BytesBE() []byte {
	return ArrayReverse(u[:])
}

// BytesLE returns the little-endian (wire-order) byte representation.
func (u Uint256) BytesLE() []byte {
	out := make([]byte, Uint256Size)
	copy(out, u[:])
	return out
}

// Bytes is an alias of BytesLE, the order EncodeBinary writes.
func (u Uint256) Bytes() []byte {
	return u.BytesLE()
}

// Equals reports whether u and other hold the same bytes.
func (u Uint256) Equals(other Uint256) bool {
	return u == other
}

// String implements fmt.Stringer, rendering the canonical big-endian
// hex form (no 0x prefix; callers that need the prefix add it, matching
// Uint160's convention being json-only).
func (u Uint256) String() string {
	return hex.EncodeToString(u.BytesBE())
}

// EncodeBinary implements the io.Serializable interface.
func (u Uint256) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(u[:])
}

// DecodeBinary implements the io.Serializable interface.
func (u *Uint256) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(u[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (u Uint256) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + u.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Uint256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	res, err := Uint256DecodeStringBE(s)
	if err != nil {
		return err
	}
	*u = res
	return nil
}
