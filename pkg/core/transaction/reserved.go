package transaction

import (
	"github.com/nan01ab/neo/pkg/io"
)

// maxReservedValue bounds a Reserved attribute's opaque payload; it
// exists purely to keep an adversarial length prefix from forcing a
// large allocation, the same role MaxInvocationScript plays for
// Witness.
const maxReservedValue = 64 * 1024

// Reserved is the catch-all payload for any attribute tag inside
// [ReservedLowerBound, ReservedUpperBound]: the framework does not
// understand it, so it round-trips the raw bytes without attempting
// interpretation. verify/NetworkFee treat it as inert.
type Reserved struct {
	Value []byte `json:"value"`
}

// Verify implements AttrValue: a reserved attribute never fails
// verification on its own account, since no local code understands its
// semantics well enough to reject it.
func (r *Reserved) Verify(_ Views, _ VerificationSubject) bool {
	return true
}

// NetworkFee implements AttrValue.
func (r *Reserved) NetworkFee(_ VerificationSubject, _, _ int64) int64 {
	return 0
}

// EncodeBinary implements the io.Serializable interface.
func (r *Reserved) EncodeBinary(w *io.BinWriter) {
	w.WriteVarBytes(r.Value)
}

// DecodeBinary implements the io.Serializable interface.
func (r *Reserved) DecodeBinary(br *io.BinReader) {
	r.Value = br.ReadVarBytes(maxReservedValue)
}
