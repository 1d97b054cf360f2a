package verify

import (
	"errors"
	"testing"

	"github.com/nan01ab/neo/pkg/core/transaction"
	"github.com/nan01ab/neo/pkg/crypto/keys"
	"github.com/nan01ab/neo/pkg/util"
	"github.com/stretchr/testify/require"
)

type stubLedger struct {
	onChain map[util.Uint256]bool
}

func (l *stubLedger) ContainsTransaction(h util.Uint256) bool { return l.onChain[h] }

type stubCommittee struct{}

func (stubCommittee) IsCommitteeMember(util.Uint160) bool { return false }

type stubOracle struct{}

func (stubOracle) HasPendingRequest(uint64) bool { return false }

type stubClock struct{ height uint32 }

func (c stubClock) CurrentHeight() uint32 { return c.height }

type stubNotary struct{ enabled bool }

func (n stubNotary) IsEnabled() bool { return n.enabled }

type stubSubject struct {
	signers  []transaction.Signer
	feePayer util.Uint160
}

func (s stubSubject) Signers() []transaction.Signer { return s.signers }
func (s stubSubject) FeePayer() util.Uint160        { return s.feePayer }

func twoSignerSubject() stubSubject {
	return stubSubject{signers: []transaction.Signer{{}, {}}}
}

func TestCheckAttributeCardinalityRejectsDuplicates(t *testing.T) {
	attrs := []transaction.Attribute{
		{Type: transaction.HighPriority},
		{Type: transaction.HighPriority},
	}
	err := CheckAttributeCardinality(attrs)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFormat))
}

func TestCheckAttributeCardinalityAllowsConflicts(t *testing.T) {
	attrs := []transaction.Attribute{
		{Type: transaction.ConflictsT, Value: &transaction.Conflicts{Hash: util.Uint256{1}}},
		{Type: transaction.ConflictsT, Value: &transaction.Conflicts{Hash: util.Uint256{2}}},
	}
	require.NoError(t, CheckAttributeCardinality(attrs))
}

func TestComputeNetworkFeeContributionConflicts(t *testing.T) {
	attrs := []transaction.Attribute{
		{Type: transaction.ConflictsT, Value: &transaction.Conflicts{Hash: util.Uint256{1}}},
		{Type: transaction.ConflictsT, Value: &transaction.Conflicts{Hash: util.Uint256{2}}},
		{Type: transaction.ConflictsT, Value: &transaction.Conflicts{Hash: util.Uint256{3}}},
	}
	sub := twoSignerSubject()
	fee := ComputeNetworkFeeContribution(attrs, sub, 100, 0)
	require.Equal(t, int64(3*2*100), fee)
}

func TestVerifyAttributesConflictsOnChain(t *testing.T) {
	onChainHash := util.Uint256{1}
	attrs := []transaction.Attribute{
		{Type: transaction.ConflictsT, Value: &transaction.Conflicts{Hash: onChainHash}},
	}
	views := transaction.Views{
		Ledger:    &stubLedger{onChain: map[util.Uint256]bool{onChainHash: true}},
		Committee: stubCommittee{},
		Oracle:    stubOracle{},
		Clock:     stubClock{},
	}
	res, err := VerifyAttributes(attrs, views, twoSignerSubject())
	require.NoError(t, err)
	require.False(t, res.OK())
	require.NotEmpty(t, res.Reason())
}

func TestVerifyAttributesConflictsAbsent(t *testing.T) {
	attrs := []transaction.Attribute{
		{Type: transaction.ConflictsT, Value: &transaction.Conflicts{Hash: util.Uint256{9}}},
	}
	views := transaction.Views{
		Ledger:    &stubLedger{onChain: map[util.Uint256]bool{}},
		Committee: stubCommittee{},
		Oracle:    stubOracle{},
		Clock:     stubClock{},
	}
	res, err := VerifyAttributes(attrs, views, twoSignerSubject())
	require.NoError(t, err)
	require.True(t, res.OK())
}

func TestVerifyAttributesNotaryAssistedRequiresFeatureActive(t *testing.T) {
	attrs := []transaction.Attribute{
		{Type: transaction.NotaryAssistedT, Value: &transaction.NotaryAssisted{NKeys: 1}},
	}
	views := transaction.Views{
		Ledger:    &stubLedger{onChain: map[util.Uint256]bool{}},
		Committee: stubCommittee{},
		Oracle:    stubOracle{},
		Clock:     stubClock{},
		Notary:    stubNotary{enabled: false},
	}
	res, err := VerifyAttributes(attrs, views, twoSignerSubject())
	require.NoError(t, err)
	require.False(t, res.OK())

	views.Notary = stubNotary{enabled: true}
	res, err = VerifyAttributes(attrs, views, twoSignerSubject())
	require.NoError(t, err)
	require.True(t, res.OK())
}

func TestAuthorizeSignersRequiresAll(t *testing.T) {
	account := util.Uint160{1, 1, 1}
	signers := []transaction.Signer{
		{Account: account, Scopes: transaction.Global},
		{Account: util.Uint160{2, 2, 2}, Scopes: transaction.None},
	}
	res, err := AuthorizeSigners(signers, &testCtx{current: account})
	require.NoError(t, err)
	require.False(t, res.OK())
}

type testCtx struct {
	current util.Uint160
}

func (c *testCtx) GetCallingScriptHash() util.Uint160 { return util.Uint160{} }
func (c *testCtx) GetCurrentScriptHash() util.Uint160 { return c.current }
func (c *testCtx) GetEntryScriptHash() util.Uint160   { return util.Uint160{} }
func (c *testCtx) CallingScriptHasGroup(*keys.PublicKey) (bool, error) {
	return false, nil
}
func (c *testCtx) CurrentScriptHasGroup(*keys.PublicKey) (bool, error) {
	return false, nil
}
