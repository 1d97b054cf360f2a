package transaction

import (
	"github.com/nan01ab/neo/pkg/io"
	"github.com/nan01ab/neo/pkg/util"
)

// Conflicts names a transaction hash that must NOT already be on chain;
// it is the one attribute type a transaction may carry more than once
// (AttrType.AllowMultiple). Its network-fee contribution discourages
// spamming conflict markers: one base fee per signer, per attribute.
type Conflicts struct {
	Hash util.Uint256 `json:"hash"`
}

// Verify implements AttrValue.
func (c *Conflicts) Verify(views Views, _ VerificationSubject) bool {
	return !views.Ledger.ContainsTransaction(c.Hash)
}

// NetworkFee implements AttrValue.
func (c *Conflicts) NetworkFee(tx VerificationSubject, baseFee, _ int64) int64 {
	return int64(len(tx.Signers())) * baseFee
}

// EncodeBinary implements the io.Serializable interface.
func (c *Conflicts) EncodeBinary(w *io.BinWriter) {
	c.Hash.EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (c *Conflicts) DecodeBinary(r *io.BinReader) {
	c.Hash.DecodeBinary(r)
}
