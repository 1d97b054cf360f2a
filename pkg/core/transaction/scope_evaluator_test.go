package transaction

import (
	"testing"

	"github.com/nan01ab/neo/pkg/crypto/keys"
	"github.com/nan01ab/neo/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestSignerAuthorizesSelf(t *testing.T) {
	account := util.Uint160{9, 9, 9}
	s := &Signer{Account: account, Scopes: None}
	tmc := &TestMC{current: account}
	ok, err := s.Authorizes(tmc)
	require.NoError(t, err)
	require.True(t, ok)

	tmc2 := &TestMC{current: util.Uint160{1}}
	ok, err = s.Authorizes(tmc2)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignerAuthorizesCalledByEntry(t *testing.T) {
	entrySC := util.Uint160{1, 2, 3}
	s := &Signer{Account: util.Uint160{0xff}, Scopes: CalledByEntry}

	positive := &TestMC{entry: entrySC, current: entrySC, calling: entrySC}
	ok, err := s.Authorizes(positive)
	require.NoError(t, err)
	require.True(t, ok)

	negative := &TestMC{entry: entrySC, current: util.Uint160{7}, calling: util.Uint160{8}}
	ok, err = s.Authorizes(negative)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignerAuthorizesCustomGroups(t *testing.T) {
	pk1, err := keys.NewPrivateKey()
	require.NoError(t, err)
	pk2, err := keys.NewPrivateKey()
	require.NoError(t, err)
	currentSC := util.Uint160{4, 5, 6}

	s := &Signer{
		Account:       util.Uint160{0xff},
		Scopes:        CustomGroups,
		AllowedGroups: []*keys.PublicKey{pk1.PublicKey()},
	}

	present := &TestMC{current: currentSC, goodKey: pk1.PublicKey()}
	ok, err := s.Authorizes(present)
	require.NoError(t, err)
	require.True(t, ok)

	absent := &TestMC{current: currentSC, goodKey: pk2.PublicKey()}
	ok, err = s.Authorizes(absent)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignerAuthorizesRulesDenyDoesNotOverride(t *testing.T) {
	entrySC := util.Uint160{1, 2, 3}
	s := &Signer{
		Account: util.Uint160{0xff},
		Scopes:  CalledByEntry | Rules,
		Rules: []WitnessRule{
			{Action: WitnessDeny, Condition: ConditionCalledByEntry{}},
		},
	}

	tmc := &TestMC{entry: entrySC, current: entrySC, calling: entrySC}
	ok, err := s.Authorizes(tmc)
	require.NoError(t, err)
	require.True(t, ok, "CalledByEntry clause must still authorize even though the Rules clause's first match is Deny")
}

func TestSignerAuthorizesGlobal(t *testing.T) {
	s := &Signer{Account: util.Uint160{0xff}, Scopes: Global}
	tmc := &TestMC{current: util.Uint160{1, 1, 1}}
	ok, err := s.Authorizes(tmc)
	require.NoError(t, err)
	require.True(t, ok)
}
