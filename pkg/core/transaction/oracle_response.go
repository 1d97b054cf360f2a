package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/nan01ab/neo/pkg/io"
)

// OracleResponseCode classifies the outcome of an oracle request.
type OracleResponseCode byte

const (
	Success               OracleResponseCode = 0x00
	ProtocolNotSupported  OracleResponseCode = 0x10
	ConsensusUnreachable  OracleResponseCode = 0x12
	NotFound              OracleResponseCode = 0x14
	Timeout               OracleResponseCode = 0x16
	Forbidden             OracleResponseCode = 0x18
	ResponseTooLarge      OracleResponseCode = 0x1a
	InsufficientFunds     OracleResponseCode = 0x1c
	Error                 OracleResponseCode = 0xff
)

func (c OracleResponseCode) String() string {
	switch c {
	case Success:
		return "Success"
	case ProtocolNotSupported:
		return "ProtocolNotSupported"
	case ConsensusUnreachable:
		return "ConsensusUnreachable"
	case NotFound:
		return "NotFound"
	case Timeout:
		return "Timeout"
	case Forbidden:
		return "Forbidden"
	case ResponseTooLarge:
		return "ResponseTooLarge"
	case InsufficientFunds:
		return "InsufficientFunds"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%02x)", byte(c))
	}
}

func oracleResponseCodeFromString(s string) (OracleResponseCode, error) {
	switch s {
	case "Success":
		return Success, nil
	case "ProtocolNotSupported":
		return ProtocolNotSupported, nil
	case "ConsensusUnreachable":
		return ConsensusUnreachable, nil
	case "NotFound":
		return NotFound, nil
	case "Timeout":
		return Timeout, nil
	case "Forbidden":
		return Forbidden, nil
	case "ResponseTooLarge":
		return ResponseTooLarge, nil
	case "InsufficientFunds":
		return InsufficientFunds, nil
	case "Error":
		return Error, nil
	default:
		return 0, fmt.Errorf("oracle response: unknown code %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (c OracleResponseCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *OracleResponseCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	code, err := oracleResponseCodeFromString(s)
	if err != nil {
		return err
	}
	*c = code
	return nil
}

const maxOracleResult = 0xffff

// OracleResponse carries the outcome of a previously issued oracle
// request: verify checks the request is still outstanding
// (OracleState.HasPendingRequest); it contributes no network fee of its
// own (the oracle contract's own fee model, not this attribute, pays
// for oracle service).
type OracleResponse struct {
	ID     uint64
	Code   OracleResponseCode
	Result []byte
}

// Verify implements AttrValue.
func (o *OracleResponse) Verify(views Views, _ VerificationSubject) bool {
	return views.Oracle.HasPendingRequest(o.ID)
}

// NetworkFee implements AttrValue.
func (o *OracleResponse) NetworkFee(_ VerificationSubject, _, _ int64) int64 {
	return 0
}

// EncodeBinary implements the io.Serializable interface.
func (o *OracleResponse) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(o.ID)
	w.WriteB(byte(o.Code))
	w.WriteVarBytes(o.Result)
}

// DecodeBinary implements the io.Serializable interface.
func (o *OracleResponse) DecodeBinary(r *io.BinReader) {
	o.ID = r.ReadU64LE()
	code := r.ReadB()
	if r.Err != nil {
		return
	}
	o.Code = OracleResponseCode(code)
	o.Result = r.ReadVarBytes(maxOracleResult)
}

type oracleResponseAux struct {
	ID     uint64             `json:"id"`
	Code   OracleResponseCode `json:"code"`
	Result string             `json:"result"`
}

// MarshalJSON implements the json.Marshaler interface.
func (o *OracleResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(oracleResponseAux{ID: o.ID, Code: o.Code, Result: base64Encode(o.Result)})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (o *OracleResponse) UnmarshalJSON(data []byte) error {
	aux := new(oracleResponseAux)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	res, err := base64Decode(aux.Result)
	if err != nil {
		return err
	}
	o.ID = aux.ID
	o.Code = aux.Code
	o.Result = res
	return nil
}
