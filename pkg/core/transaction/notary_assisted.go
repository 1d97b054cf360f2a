package transaction

import (
	"github.com/nan01ab/neo/pkg/io"
)

// NotaryAssisted marks a transaction as carrying a notary co-signature
// and declares how many extra signing keys the notary service fronted.
// NKeys is a single byte on the wire, so it is bounded to [0, 255] by
// construction; the spec's distillation does not name the exact
// cross-check against the signer list's notary co-signer count, so this
// repo enforces only the mechanically checkable wire-level bound and
// leaves the signer-count cross-check to the ledger collaborator that
// actually has the full transaction in view (see DESIGN.md).
type NotaryAssisted struct {
	NKeys byte `json:"nkeys"`
}

// Verify implements AttrValue. Two things must hold: the notary service
// must actually be active on this network (views.Notary says so), and
// the byte-range bound on NKeys, which the wire format enforces purely
// by construction (NKeys cannot exceed 255). The signer-count
// cross-check DESIGN.md documents as out of scope for this attribute in
// isolation remains unevaluated here.
func (n *NotaryAssisted) Verify(views Views, _ VerificationSubject) bool {
	return views.Notary != nil && views.Notary.IsEnabled()
}

// NetworkFee implements AttrValue: (NKeys+1) extra notary service keys,
// each billed at the configured per-key rate.
func (n *NotaryAssisted) NetworkFee(_ VerificationSubject, _, notaryServiceFeePerKey int64) int64 {
	return (int64(n.NKeys) + 1) * notaryServiceFeePerKey
}

// EncodeBinary implements the io.Serializable interface.
func (n *NotaryAssisted) EncodeBinary(w *io.BinWriter) {
	w.WriteB(n.NKeys)
}

// DecodeBinary implements the io.Serializable interface.
func (n *NotaryAssisted) DecodeBinary(r *io.BinReader) {
	n.NKeys = r.ReadB()
}
