// Package testserdes provides round-trip assertion helpers used by the
// codec tests in pkg/core/transaction.
package testserdes

import (
	"encoding/json"
	"testing"

	"github.com/nan01ab/neo/pkg/io"
	"github.com/stretchr/testify/require"
)

// MarshalUnmarshalJSON checks that expected stays the same after
// marshaling to JSON and unmarshaling back into actual.
func MarshalUnmarshalJSON(t *testing.T, expected, actual interface{}) {
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// EncodeDecodeBinary checks that expected stays the same after a binary
// EncodeBinary/DecodeBinary round trip into actual.
func EncodeDecodeBinary(t *testing.T, expected, actual io.Serializable) {
	data, err := EncodeBinary(expected)
	require.NoError(t, err)
	require.NoError(t, DecodeBinary(data, actual))
	require.Equal(t, expected, actual)
}

// EncodeBinary serializes a to a byte slice.
func EncodeBinary(a io.Serializable) ([]byte, error) {
	w := io.NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// DecodeBinary deserializes a from a byte slice.
func DecodeBinary(data []byte, a io.Serializable) error {
	r := io.NewBinReaderFromBuf(data)
	a.DecodeBinary(r)
	return r.Err
}
