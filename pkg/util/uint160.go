package util

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nan01ab/neo/pkg/io"
)

// Uint160Size is the length in bytes of a Uint160.
const Uint160Size = 20

// Uint160 is a 20-byte little-endian-on-the-wire, big-endian-on-display
// fixed size array used for script hashes (Hash160 of a verification
// script is the canonical on-chain identity of an account or contract).
type Uint160 [Uint160Size]byte

// Uint160DecodeString attempts to decode the given string (optionally
// 0x-prefixed, big-endian hex as displayed to users) into a Uint160.
func Uint160DecodeString(s string) (u Uint160, err error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != Uint160Size*2 {
		return u, fmt.Errorf("expected string size of %d got %d", Uint160Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, err
	}
	return Uint160DecodeBytesBE(b)
}

// Uint160DecodeBytes is an alias of Uint160DecodeBytesBE kept for callers
// that don't care about byte order semantics and just want "the 20 raw
// bytes displayed by String()".
func Uint160DecodeBytes(b []byte) (u Uint160, err error) {
	return Uint160DecodeBytesBE(b)
}

// Uint160DecodeBytesBE decodes a Uint160 from big-endian bytes (the same
// order as the hex string returned by String()).
func Uint160DecodeBytesBE(b []byte) (u Uint160, err error) {
	if len(b) != Uint160Size {
		return u, fmt.Errorf("expected []byte of size %d got %d", Uint160Size, len(b))
	}
	copy(u[:], ArrayReverse(b))
	return u, nil
}

// Uint160DecodeBytesLE decodes a Uint160 from little-endian (wire-order)
// bytes, the order used by EncodeBinary/DecodeBinary.
func Uint160DecodeBytesLE(b []byte) (u Uint160, err error) {
	if len(b) != Uint160Size {
		return u, fmt.Errorf("expected []byte of size %d got %d", Uint160Size, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// BytesBE returns the big-endian (display-order) byte representation.
func (u Uint160) BytesBE() []byte {
	return ArrayReverse(u[:])
}

// BytesLE returns the little-endian (wire-order) byte representation.
func (u Uint160) BytesLE() []byte {
	out := make([]byte, Uint160Size)
	copy(out, u[:])
	return out
}

// Bytes is an alias of BytesLE, the order EncodeBinary writes.
func (u Uint160) Bytes() []byte {
	return u.BytesLE()
}

// Equals reports whether u and other hold the same bytes.
func (u Uint160) Equals(other Uint160) bool {
	return u == other
}

// String implements fmt.Stringer, rendering the big-endian hex form with
// no 0x prefix (MarshalJSON adds the prefix).
func (u Uint160) String() string {
	return hex.EncodeToString(u.BytesBE())
}

// StringLE renders the little-endian (wire order) hex form with no 0x
// prefix, occasionally useful for debugging raw wire captures.
func (u Uint160) StringLE() string {
	return hex.EncodeToString(u.BytesLE())
}

// EncodeBinary implements the io.Serializable interface: Uint160 is
// written little-endian, wire order.
func (u Uint160) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(u[:])
}

// DecodeBinary implements the io.Serializable interface.
func (u *Uint160) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(u[:])
}

// MarshalJSON implements the json.Marshaler interface, rendering the
// canonical 0x-prefixed big-endian hex string.
func (u Uint160) MarshalJSON() ([]byte, error) {
	return json.Marshal("0x" + u.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface, accepting
// either a 0x-prefixed or bare big-endian hex string.
func (u *Uint160) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	res, err := Uint160DecodeString(s)
	if err != nil {
		return err
	}
	*u = res
	return nil
}
