// Package verify ties the codec, scope evaluator, and attribute
// framework in pkg/core/transaction together into the two top-level
// operations a caller actually wants: deciding whether a transaction's
// witnesses and attributes authorize it, and computing the network-fee
// contribution its attributes add. Nothing here is consensus state: it
// is pure composition over the interfaces transaction.Views supplies.
package verify

import (
	"errors"
	"fmt"

	"github.com/nan01ab/neo/pkg/core/transaction"
)

// ErrFormat wraps a malformed-input error: an unknown tag, an illegal
// scope combination, a cardinality violation, or anything else that
// means the transaction could never have been constructed legally, as
// opposed to one that is legally shaped but denied.
var ErrFormat = errors.New("format error")

// formatErrorf builds an error in the ErrFormat chain with a specific
// reason, still unwrappable to ErrFormat via errors.Is.
func formatErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrFormat}, args...)...)
}

// Result is a policy outcome, never an error: either the transaction's
// witnesses/attributes hold up (Valid) or they don't, with a reason
// (Invalid). Format errors are reported separately, as Go errors,
// because they mean the input was never well-formed to begin with.
type Result struct {
	ok     bool
	reason string
}

// Valid reports a passing verification.
func Valid() Result { return Result{ok: true} }

// Invalid reports a failing verification with a human-readable reason.
func Invalid(reason string) Result { return Result{ok: false, reason: reason} }

// OK reports whether this result represents a passing verification.
func (r Result) OK() bool { return r.ok }

// Reason returns the failure reason, "" if OK.
func (r Result) Reason() string { return r.reason }

// CheckAttributeCardinality enforces that no attribute type appears
// more than once unless its AllowMultiple() is true (Conflicts being
// the one exception the protocol carries).
func CheckAttributeCardinality(attrs []transaction.Attribute) error {
	seen := make(map[transaction.AttrType]struct{}, len(attrs))
	for _, a := range attrs {
		if a.Type.AllowMultiple() {
			continue
		}
		if _, dup := seen[a.Type]; dup {
			return formatErrorf("attribute type %s may not repeat", a.Type)
		}
		seen[a.Type] = struct{}{}
	}
	return nil
}

// VerifyAttributes runs every attribute's Verify hook against views and
// tx, after first rejecting an illegal cardinality. The first failing
// attribute's index names the reason; all attributes are well-formed by
// construction at this point (decoding already validated that), so the
// only way to fail is a policy rejection.
func VerifyAttributes(attrs []transaction.Attribute, views transaction.Views, tx transaction.VerificationSubject) (Result, error) {
	if err := CheckAttributeCardinality(attrs); err != nil {
		return Result{}, err
	}
	for i := range attrs {
		if !attrs[i].Verify(views, tx) {
			return Invalid(fmt.Sprintf("attribute %d (%s) failed verification", i, attrs[i].Type)), nil
		}
	}
	return Valid(), nil
}

// ComputeNetworkFeeContribution sums every attribute's NetworkFee hook.
func ComputeNetworkFeeContribution(attrs []transaction.Attribute, tx transaction.VerificationSubject, baseFee, notaryServiceFeePerKey int64) int64 {
	var total int64
	for i := range attrs {
		total += attrs[i].NetworkFee(tx, baseFee, notaryServiceFeePerKey)
	}
	return total
}

// AuthorizeSigners runs Signer.Authorizes for every signer in subject
// against ctx, returning Valid only if every signer authorizes the
// call: a transaction is authorized for a given context only when none
// of its signers' witnesses fall silent on it.
func AuthorizeSigners(signers []transaction.Signer, ctx transaction.MatchContext) (Result, error) {
	for i := range signers {
		ok, err := signers[i].Authorizes(ctx)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Invalid(fmt.Sprintf("signer %d (%s) does not authorize this context", i, signers[i].Account)), nil
		}
	}
	return Valid(), nil
}
