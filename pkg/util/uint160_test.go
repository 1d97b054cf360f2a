package util

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testUint160Hex = "2d3b96ae1bcc5a585e075e3b81920210dec16302"

func TestUint160UnmarshalJSON(t *testing.T) {
	expected, err := Uint160DecodeString(testUint160Hex)
	assert.NoError(t, err)

	var u1 Uint160
	s, _ := json.Marshal(testUint160Hex)
	assert.Nil(t, json.Unmarshal(s, &u1))
	assert.True(t, expected.Equals(u1))

	var u2 Uint160
	s, _ = json.Marshal("0x" + testUint160Hex)
	assert.Nil(t, json.Unmarshal(s, &u2))
	assert.True(t, expected.Equals(u2))
}

func TestUint160DecodeString(t *testing.T) {
	val, err := Uint160DecodeString(testUint160Hex)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, testUint160Hex, val.String())
}

func TestUint160DecodeBytes(t *testing.T) {
	b, err := hex.DecodeString(testUint160Hex)
	if err != nil {
		t.Fatal(err)
	}
	val, err := Uint160DecodeBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, testUint160Hex, val.String())
}

func TestUint160Equals(t *testing.T) {
	a := testUint160Hex
	b := "4d3b96ae1bcc5a585e075e3b81920210dec16302"

	ua, err := Uint160DecodeString(a)
	if err != nil {
		t.Fatal(err)
	}
	ub, err := Uint160DecodeString(b)
	if err != nil {
		t.Fatal(err)
	}
	if ua.Equals(ub) {
		t.Fatalf("%s and %s cannot be equal", ua, ub)
	}
	if !ua.Equals(ua) {
		t.Fatalf("%s and %s must be equal", ua, ua)
	}
}

func TestUint160BadLength(t *testing.T) {
	_, err := Uint160DecodeString("1122")
	assert.Error(t, err)
	_, err = Uint160DecodeBytes([]byte{1, 2, 3})
	assert.Error(t, err)
}
