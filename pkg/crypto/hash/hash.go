// Package hash implements the digest functions the witness authorization
// core needs to turn a verification script or a public key into its
// on-chain identity: Hash160 (script hash) and Hash256 (transaction hash).
package hash

import (
	"crypto/sha256"

	"github.com/nan01ab/neo/pkg/util"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // still the only maintained ripemd160 implementation in the ecosystem
)

// Sha256 computes a single SHA-256 digest.
func Sha256(b []byte) util.Uint256 {
	digest := sha256.Sum256(b)
	return util.Uint256(digest)
}

// DoubleSha256 computes SHA-256 twice, the digest used for Hash256.
func DoubleSha256(b []byte) util.Uint256 {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return util.Uint256(second)
}

// RipeMD160 computes a RIPEMD-160 digest.
func RipeMD160(b []byte) util.Uint160 {
	h := ripemd160.New()
	_, _ = h.Write(b)
	var out util.Uint160
	copy(out[:], h.Sum(nil))
	return out
}

// Hash160 computes SHA-256 followed by RIPEMD-160, the digest used to
// derive a script hash (an account's or contract's on-chain identity)
// from its verification/deployment script.
func Hash160(b []byte) util.Uint160 {
	sha := sha256.Sum256(b)
	return RipeMD160(sha[:])
}

// Hash256 computes the double-SHA-256 digest used for transaction hashes.
func Hash256(b []byte) util.Uint256 {
	return DoubleSha256(b)
}
