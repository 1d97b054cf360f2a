package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/nan01ab/neo/pkg/io"
	"github.com/nan01ab/neo/pkg/util"
)

// LedgerView is the read-only ledger slice Conflicts needs: has a given
// transaction hash already been included in a block.
type LedgerView interface {
	ContainsTransaction(util.Uint256) bool
}

// CommitteeView answers whether a script hash belongs to the current
// committee, the predicate HighPriority authorizes against.
type CommitteeView interface {
	IsCommitteeMember(util.Uint160) bool
}

// OracleState answers whether an oracle request ID is still outstanding,
// the predicate OracleResponse verifies against.
type OracleState interface {
	HasPendingRequest(id uint64) bool
}

// Clock supplies the current block height, the predicate NotValidBefore
// compares against.
type Clock interface {
	CurrentHeight() uint32
}

// NotaryState answers whether the notary service is active on this
// network, the predicate NotaryAssisted verifies against before
// considering a notary-assisted transaction well-formed.
type NotaryState interface {
	IsEnabled() bool
}

// Views bundles the read-only collaborators attribute verification and
// fee calculation consult. The core never constructs one itself; a
// caller wires concrete backends (pkg/manifeststore, pkg/chainstore,
// pkg/committee, pkg/oraclestate) into it.
type Views struct {
	Ledger    LedgerView
	Committee CommitteeView
	Oracle    OracleState
	Clock     Clock
	Notary    NotaryState
}

// VerificationSubject is the minimal slice of a transaction an
// attribute's verify/fee hooks need: its signer set and its fee payer.
// The core deliberately does not define a full Transaction type - block
// and transaction body layout belongs to a ledger collaborator, not to
// the witness authorization core.
type VerificationSubject interface {
	Signers() []Signer
	FeePayer() util.Uint160
}

// AttrValue is the payload half of an Attribute: the data a concrete
// variant carries plus the behavior specific to it. HighPriority is the
// one variant with no payload at all, so Attribute.Value is nil for it;
// every other variant's Value implements AttrValue.
type AttrValue interface {
	io.Serializable
	Verify(views Views, tx VerificationSubject) bool
	NetworkFee(tx VerificationSubject, baseFee, notaryServiceFeePerKey int64) int64
}

// attrCtor builds a zero AttrValue for a known tag, ready for
// DecodeBinary/UnmarshalJSON to fill in. HighPriority is absent: it has
// no Value to construct.
func attrCtor(t AttrType) (func() AttrValue, bool) {
	switch t {
	case OracleResponseT:
		return func() AttrValue { return new(OracleResponse) }, true
	case NotValidBeforeT:
		return func() AttrValue { return new(NotValidBefore) }, true
	case ConflictsT:
		return func() AttrValue { return new(Conflicts) }, true
	case NotaryAssistedT:
		return func() AttrValue { return new(NotaryAssisted) }, true
	default:
		if t.IsReserved() {
			return func() AttrValue { return new(Reserved) }, true
		}
		return nil, false
	}
}

// Attribute is a single tagged entry in a transaction's attribute
// vector. Decoding looks the tag up in the static constructor table
// above and delegates payload parsing to the resulting Value; nothing
// outside that table needs to know a given variant's internals.
type Attribute struct {
	Type  AttrType
	Value AttrValue
}

// Verify runs this attribute's consensus-time predicate.
func (a *Attribute) Verify(views Views, tx VerificationSubject) bool {
	if a.Type == HighPriority {
		return views.Committee.IsCommitteeMember(tx.FeePayer())
	}
	if a.Value == nil {
		return false
	}
	return a.Value.Verify(views, tx)
}

// NetworkFee returns this attribute's additive network-fee contribution.
func (a *Attribute) NetworkFee(tx VerificationSubject, baseFee, notaryServiceFeePerKey int64) int64 {
	if a.Value == nil {
		return 0
	}
	return a.Value.NetworkFee(tx, baseFee, notaryServiceFeePerKey)
}

// EncodeBinary implements the io.Serializable interface.
func (a *Attribute) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(a.Type))
	if a.Value == nil {
		return
	}
	if _, ok := a.Value.(*Reserved); ok && !a.Type.IsReserved() {
		w.SetError(fmt.Errorf("attribute: tag %#x is not in the reserved range", byte(a.Type)))
		return
	}
	a.Value.EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (a *Attribute) DecodeBinary(r *io.BinReader) {
	tag := r.ReadB()
	if r.Err != nil {
		return
	}
	t := AttrType(tag)
	if t == HighPriority {
		a.Type = t
		a.Value = nil
		return
	}
	ctor, ok := attrCtor(t)
	if !ok {
		r.Err = fmt.Errorf("attribute: unknown type %#x", tag)
		return
	}
	val := ctor()
	val.DecodeBinary(r)
	if r.Err != nil {
		return
	}
	a.Type = t
	a.Value = val
}

// MarshalJSON implements the json.Marshaler interface: the "type" field
// and the value's own fields are flattened into a single JSON object.
func (a *Attribute) MarshalJSON() ([]byte, error) {
	if a.Value == nil {
		return json.Marshal(struct {
			Type string `json:"type"`
		}{a.Type.String()})
	}
	valBytes, err := json.Marshal(a.Value)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(valBytes, &m); err != nil {
		return nil, err
	}
	typeBytes, err := json.Marshal(a.Type.String())
	if err != nil {
		return nil, err
	}
	m["type"] = typeBytes
	return json.Marshal(m)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	t, err := AttrTypeFromString(probe.Type)
	if err != nil {
		return err
	}
	if t == HighPriority {
		a.Type = t
		a.Value = nil
		return nil
	}
	ctor, ok := attrCtor(t)
	if !ok {
		return fmt.Errorf("attribute: unknown type %q", probe.Type)
	}
	val := ctor()
	if err := json.Unmarshal(data, val); err != nil {
		return err
	}
	a.Type = t
	a.Value = val
	return nil
}
