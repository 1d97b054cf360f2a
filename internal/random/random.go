// Package random provides non-cryptographic random fixture generators for
// tests, mirroring the teacher's internal/random helper package.
package random

import (
	"math/rand"

	"github.com/nan01ab/neo/pkg/util"
)

// Uint160 returns a pseudo-random Uint160, useful for populating test
// fixtures that don't care about the specific value.
func Uint160() util.Uint160 {
	var u util.Uint160
	_, _ = rand.Read(u[:])
	return u
}

// Uint256 returns a pseudo-random Uint256.
func Uint256() util.Uint256 {
	var u util.Uint256
	_, _ = rand.Read(u[:])
	return u
}

// Bytes returns n pseudo-random bytes.
func Bytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}
