// Package keys implements the compressed secp256r1 public (and, for test
// fixtures, private) key values the witness authorization core treats as
// opaque identities: a Group/CalledByGroup condition compares a raw
// compressed key, a CustomGroups scope intersects a list of them, and a
// script hash is derived by hashing a key's compressed bytes embedded in
// a single-signature verification script.
//
// Curve arithmetic itself is explicitly out of scope for this subsystem
// (spec Non-goals: "cryptographic primitive implementation... imported
// from a crypto collaborator"); crypto/elliptic's P-256 implementation
// plays that collaborator role here.
package keys

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
	"github.com/nan01ab/neo/pkg/crypto/hash"
	"github.com/nan01ab/neo/pkg/io"
	"github.com/nan01ab/neo/pkg/util"
)

// SignatureLen is the length, in bytes, of an ECDSA signature over
// secp256r1 as used by verification scripts (32-byte r ∥ 32-byte s).
const SignatureLen = 64

// AddressVersion is the NEO mainnet address version byte prepended before
// Base58Check-encoding a script hash.
const AddressVersion = 0x35

// PublicKey represents a point on secp256r1, the curve NEO signatures
// are verified against.
type PublicKey struct {
	X, Y *big.Int
}

// PrivateKey is a minimal secp256r1 private key, used only to produce
// fixtures in tests; the core never signs or stores private keys itself.
type PrivateKey struct {
	ecdsa.PrivateKey
}

// NewPrivateKey generates a fresh random secp256r1 private key.
func NewPrivateKey() (*PrivateKey, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{PrivateKey: *priv}, nil
}

// PublicKey returns the public key corresponding to p.
func (p *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{X: p.X, Y: p.Y}
}

// Sign produces a 64-byte r||s ECDSA signature over the hash of msg.
func (p *PrivateKey) Sign(msg []byte) ([]byte, error) {
	digest := hash.Sha256(msg)
	r, s, err := ecdsa.Sign(rand.Reader, &p.PrivateKey, digest.Bytes())
	if err != nil {
		return nil, err
	}
	sig := make([]byte, SignatureLen)
	rBytes, sBytes := r.Bytes(), s.Bytes()
	copy(sig[32-len(rBytes):32], rBytes)
	copy(sig[64-len(sBytes):64], sBytes)
	return sig, nil
}

// NewPublicKeyFromBytes decodes a PublicKey from its compressed (33-byte)
// or infinity (1-byte 0x00) wire representation.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	p := &PublicKey{}
	r := io.NewBinReaderFromBuf(b)
	p.decodeBinary(r, len(b))
	if r.Err != nil {
		return nil, r.Err
	}
	return p, nil
}

// NewPublicKeyFromString decodes a PublicKey from its compressed-hex
// string form (no 0x prefix).
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b)
}

// isInfinity reports whether p is the point at infinity (used to encode
// a "no key" placeholder some legacy scripts still contain).
func (p *PublicKey) isInfinity() bool {
	return p == nil || p.X == nil || p.Y == nil
}

// Bytes returns the compressed (33-byte) wire representation of p, or a
// single 0x00 byte for the point at infinity.
func (p *PublicKey) Bytes() []byte {
	if p.isInfinity() {
		return []byte{0x00}
	}
	return elliptic.MarshalCompressed(elliptic.P256(), p.X, p.Y)
}

// String renders the compressed-hex form (no 0x prefix, per spec §6).
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Equal reports whether p and other represent the same point, treating
// two nil keys as equal and a nil key as distinct from any concrete key.
func (p *PublicKey) Equal(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.isInfinity() || other.isInfinity() {
		return p.isInfinity() == other.isInfinity()
	}
	return p.X.Cmp(other.X) == 0 && p.Y.Cmp(other.Y) == 0
}

// Address renders the Base58Check NEO address for this key's script
// hash, given the already-derived script hash (account identity).
func Address(scriptHash util.Uint160, version byte) string {
	b := append([]byte{version}, scriptHash.BytesLE()...)
	return base58.CheckEncode(b)
}

// AddressToScriptHash reverses Address, recovering the script hash
// encoded in a NEO address string. The leading version byte is skipped
// and not checked.
func AddressToScriptHash(address string) (util.Uint160, error) {
	b, err := base58.CheckDecode(address)
	if err != nil {
		return util.Uint160{}, err
	}
	if len(b) != 1+util.Uint160Size {
		return util.Uint160{}, fmt.Errorf("invalid address payload length %d", len(b))
	}
	return util.Uint160DecodeBytesLE(b[1:])
}

// EncodeBinary implements the io.Serializable interface.
func (p *PublicKey) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(p.Bytes())
}

// DecodeBinary implements the io.Serializable interface.
func (p *PublicKey) DecodeBinary(r *io.BinReader) {
	p.decodeBinary(r, -1)
}

func (p *PublicKey) decodeBinary(r *io.BinReader, knownLen int) {
	prefix := r.ReadB()
	if r.Err != nil {
		return
	}
	switch prefix {
	case 0x00:
		p.X, p.Y = nil, nil
	case 0x02, 0x03:
		buf := make([]byte, 33)
		buf[0] = prefix
		r.ReadBytes(buf[1:])
		if r.Err != nil {
			return
		}
		x, y := elliptic.UnmarshalCompressed(elliptic.P256(), buf)
		if x == nil {
			r.Err = errors.New("invalid compressed public key point")
			return
		}
		p.X, p.Y = x, y
	default:
		r.Err = fmt.Errorf("invalid public key prefix %d", prefix)
		return
	}
	if knownLen >= 0 {
		want := 1
		if prefix != 0x00 {
			want = 33
		}
		if knownLen != want {
			r.Err = fmt.Errorf("trailing bytes after public key (%d != %d)", knownLen, want)
		}
	}
}

// MarshalJSON implements the json.Marshaler interface: compressed hex,
// no 0x prefix, matching spec §6.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	pk, err := NewPublicKeyFromString(s)
	if err != nil {
		return err
	}
	*p = *pk
	return nil
}

// PublicKeys is a sortable list of public keys, used to canonicalize the
// order of manifest group keys and AllowedGroups lists for display.
type PublicKeys []*PublicKey

func (keys PublicKeys) Len() int      { return len(keys) }
func (keys PublicKeys) Swap(i, j int) { keys[i], keys[j] = keys[j], keys[i] }
func (keys PublicKeys) Less(i, j int) bool {
	return bytes.Compare(keys[i].Bytes(), keys[j].Bytes()) < 0
}

// Contains reports whether pk is present among keys (by value equality).
func (keys PublicKeys) Contains(pk *PublicKey) bool {
	for _, k := range keys {
		if k.Equal(pk) {
			return true
		}
	}
	return false
}
