package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testUint256Hex = "a3543d540da5060c56141e4c1c839bfa16c87d2bffa1639fbe78bc7dbeaabc50"

func TestUint256DecodeStringBE(t *testing.T) {
	val, err := Uint256DecodeStringBE(testUint256Hex)
	assert.NoError(t, err)
	assert.Equal(t, testUint256Hex, val.String())
}

func TestUint256DecodeBadLength(t *testing.T) {
	_, err := Uint256DecodeStringBE("1122")
	assert.Error(t, err)
	_, err = Uint256DecodeBytesBE([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestUint256Equals(t *testing.T) {
	ua, err := Uint256DecodeStringBE(testUint256Hex)
	assert.NoError(t, err)
	ub := ua
	assert.True(t, ua.Equals(ub))
	ub[0] ^= 0xff
	assert.False(t, ua.Equals(ub))
}

func TestUint256JSONRoundTrip(t *testing.T) {
	ua, err := Uint256DecodeStringBE(testUint256Hex)
	assert.NoError(t, err)
	data, err := ua.MarshalJSON()
	assert.NoError(t, err)
	var ub Uint256
	assert.NoError(t, ub.UnmarshalJSON(data))
	assert.Equal(t, ua, ub)
}
