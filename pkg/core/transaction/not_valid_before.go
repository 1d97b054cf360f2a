package transaction

import (
	"github.com/nan01ab/neo/pkg/io"
)

// NotValidBefore withholds a transaction from the mempool until the
// chain reaches the given height; it contributes no network fee.
type NotValidBefore struct {
	Height uint32 `json:"height"`
}

// Verify implements AttrValue.
func (n *NotValidBefore) Verify(views Views, _ VerificationSubject) bool {
	return views.Clock.CurrentHeight() >= n.Height
}

// NetworkFee implements AttrValue.
func (n *NotValidBefore) NetworkFee(_ VerificationSubject, _, _ int64) int64 {
	return 0
}

// EncodeBinary implements the io.Serializable interface.
func (n *NotValidBefore) EncodeBinary(w *io.BinWriter) {
	w.WriteU32LE(n.Height)
}

// DecodeBinary implements the io.Serializable interface.
func (n *NotValidBefore) DecodeBinary(r *io.BinReader) {
	n.Height = r.ReadU32LE()
}
