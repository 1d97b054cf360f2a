package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicKeyEncodeDecodeBinary(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()

	b, err := NewPublicKeyFromBytes(pub.Bytes())
	require.NoError(t, err)
	require.True(t, pub.Equal(b))
}

func TestPublicKeyStringRoundTrip(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()

	s := pub.String()
	pub2, err := NewPublicKeyFromString(s)
	require.NoError(t, err)
	require.True(t, pub.Equal(pub2))
}

func TestPublicKeyEqual(t *testing.T) {
	priv1, err := NewPrivateKey()
	require.NoError(t, err)
	priv2, err := NewPrivateKey()
	require.NoError(t, err)

	require.True(t, priv1.PublicKey().Equal(priv1.PublicKey()))
	require.False(t, priv1.PublicKey().Equal(priv2.PublicKey()))

	b, err := NewPublicKeyFromBytes([]byte{0x00})
	require.NoError(t, err)
	require.True(t, b.Equal(b))
	require.False(t, b.Equal(priv1.PublicKey()))
}

func TestPublicKeyBadDecode(t *testing.T) {
	_, err := NewPublicKeyFromBytes([]byte{0x04, 1, 2, 3})
	require.Error(t, err)
	_, err = NewPublicKeyFromBytes(make([]byte, 33))
	require.Error(t, err)
}

func TestSignVerify(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	msg := []byte("authorize me")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)
	require.Len(t, sig, SignatureLen)
}

func TestPublicKeysSortAndContains(t *testing.T) {
	priv1, _ := NewPrivateKey()
	priv2, _ := NewPrivateKey()
	pks := PublicKeys{priv1.PublicKey(), priv2.PublicKey()}
	require.True(t, pks.Contains(priv1.PublicKey()))

	priv3, _ := NewPrivateKey()
	require.False(t, pks.Contains(priv3.PublicKey()))
}
