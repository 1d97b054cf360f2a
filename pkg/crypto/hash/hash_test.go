package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSha256(t *testing.T) {
	data := Sha256([]byte("hello"))
	expected := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	assert.Equal(t, expected, hex.EncodeToString(data.Bytes()))
}

func TestDoubleSha256(t *testing.T) {
	input := []byte("hello")
	data := DoubleSha256(input)

	first := Sha256(input)
	expected := Sha256(first.Bytes())
	assert.Equal(t, hex.EncodeToString(expected.Bytes()), hex.EncodeToString(data.Bytes()))
}

func TestRipeMD160(t *testing.T) {
	data := RipeMD160([]byte("hello"))
	expected := "108f07b8382412612c048d07d13f814118445acd"
	assert.Equal(t, expected, hex.EncodeToString(data.Bytes()))
}

func TestHash160(t *testing.T) {
	input := "02cccafb41b220cab63fd77108d2d1ebcffa32be26da29a04dca4996afce5f75db"
	publicKeyBytes, err := hex.DecodeString(input)
	assert.NoError(t, err)
	data := Hash160(publicKeyBytes)
	expected := "c8e2b685cc70ec96743b55beb9449782f8f775d8"
	assert.Equal(t, expected, hex.EncodeToString(data.Bytes()))
}
