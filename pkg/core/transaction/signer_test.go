package transaction

import (
	"testing"

	"github.com/nan01ab/neo/internal/testserdes"
	"github.com/nan01ab/neo/pkg/crypto/keys"
	"github.com/nan01ab/neo/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestSignerEncodeDecode(t *testing.T) {
	pk, err := keys.NewPrivateKey()
	require.NoError(t, err)
	expected := &Signer{
		Account:          util.Uint160{1, 2, 3, 4, 5},
		Scopes:           CustomContracts | CustomGroups | Rules,
		AllowedContracts: []util.Uint160{{1, 2, 3, 4}, {6, 7, 8, 9}},
		AllowedGroups:    []*keys.PublicKey{pk.PublicKey()},
		Rules:            []WitnessRule{{Action: WitnessAllow, Condition: ConditionCalledByEntry{}}},
	}
	actual := &Signer{}
	testserdes.EncodeDecodeBinary(t, expected, actual)
}

func TestSignerMarshalUnmarshalJSON(t *testing.T) {
	expected := &Signer{
		Account:          util.Uint160{1, 2, 3, 4, 5},
		Scopes:           CustomContracts,
		AllowedContracts: []util.Uint160{{1, 2, 3, 4}, {6, 7, 8, 9}},
	}
	actual := &Signer{}
	testserdes.MarshalUnmarshalJSON(t, expected, actual)
}

func TestSignerInvalidCombinations(t *testing.T) {
	_, err := ScopesFromByte(byte(CustomContracts | Global))
	require.Error(t, err)

	bad := &Signer{Scopes: None, AllowedContracts: []util.Uint160{{1, 2, 3}}}
	require.Error(t, bad.validate())

	bad = &Signer{Scopes: CustomGroups}
	for i := 0; i < maxSubitems+1; i++ {
		bad.AllowedGroups = append(bad.AllowedGroups, nil)
	}
	require.Error(t, bad.validate())
}
