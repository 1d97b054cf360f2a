package transaction

import (
	"encoding/json"

	"github.com/nan01ab/neo/pkg/crypto/hash"
	"github.com/nan01ab/neo/pkg/io"
	"github.com/nan01ab/neo/pkg/util"
)

// MaxInvocationScript and MaxVerificationScript bound the wire size of a
// Witness's two scripts; they exist to keep a hostile transaction from
// forcing an unbounded allocation on decode.
const (
	MaxInvocationScript   = 1024
	MaxVerificationScript = 1024
)

// Witness carries the invocation script (pushes signatures/arguments) and
// verification script (the account's actual authorization check) that
// together prove a Signer authorized a transaction.
type Witness struct {
	InvocationScript   []byte
	VerificationScript []byte
}

// ScriptHash returns the account identity (Hash160 of the verification
// script) this witness belongs to.
func (w Witness) ScriptHash() util.Uint160 {
	return hash.Hash160(w.VerificationScript)
}

// Copy returns a deep copy of w.
func (w Witness) Copy() Witness {
	return Witness{
		InvocationScript:   append([]byte(nil), w.InvocationScript...),
		VerificationScript: append([]byte(nil), w.VerificationScript...),
	}
}

// EncodeBinary implements the io.Serializable interface.
func (w *Witness) EncodeBinary(bw *io.BinWriter) {
	bw.WriteVarBytes(w.InvocationScript)
	bw.WriteVarBytes(w.VerificationScript)
}

// DecodeBinary implements the io.Serializable interface.
func (w *Witness) DecodeBinary(br *io.BinReader) {
	w.InvocationScript = br.ReadVarBytes(MaxInvocationScript)
	w.VerificationScript = br.ReadVarBytes(MaxVerificationScript)
}

type witnessAux struct {
	Invocation   string `json:"invocation"`
	Verification string `json:"verification"`
}

// MarshalJSON implements the json.Marshaler interface, base64-encoding
// both scripts as is conventional for opaque binary payloads in JSON.
func (w Witness) MarshalJSON() ([]byte, error) {
	return json.Marshal(witnessAux{
		Invocation:   base64Encode(w.InvocationScript),
		Verification: base64Encode(w.VerificationScript),
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (w *Witness) UnmarshalJSON(data []byte) error {
	aux := new(witnessAux)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	inv, err := base64Decode(aux.Invocation)
	if err != nil {
		return err
	}
	ver, err := base64Decode(aux.Verification)
	if err != nil {
		return err
	}
	w.InvocationScript = inv
	w.VerificationScript = ver
	return nil
}
