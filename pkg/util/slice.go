package util

// ArrayReverse returns a new slice holding the bytes of b in reverse
// order; b itself is left untouched. It underlies the little-endian
// wire / big-endian display duality of Uint160 and Uint256.
func ArrayReverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-i-1] = v
	}
	return out
}
