package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/nan01ab/neo/pkg/io"
)

// WitnessAction is the outcome a WitnessRule applies when its condition
// matches.
type WitnessAction byte

const (
	// WitnessDeny withholds authorization when the condition matches.
	WitnessDeny WitnessAction = 0x00
	// WitnessAllow grants authorization when the condition matches.
	WitnessAllow WitnessAction = 0x01
)

// String implements fmt.Stringer.
func (a WitnessAction) String() string {
	switch a {
	case WitnessDeny:
		return "Deny"
	case WitnessAllow:
		return "Allow"
	default:
		return fmt.Sprintf("Unknown(%02x)", byte(a))
	}
}

// ActionFromString is the inverse of String.
func ActionFromString(s string) (WitnessAction, error) {
	switch s {
	case "Deny":
		return WitnessDeny, nil
	case "Allow":
		return WitnessAllow, nil
	default:
		return 0, fmt.Errorf("witness rule: unknown action %q", s)
	}
}

// WitnessRule pairs an action with the condition that triggers it. A
// Signer's Rules are evaluated left to right and the first matching rule
// decides; Deny never overrides a clause outside the rule list (scopes
// combine with OR, not AND).
type WitnessRule struct {
	Action    WitnessAction
	Condition WitnessCondition
}

// Copy returns a deep copy of r: the condition tree is rebuilt from its
// own wire encoding so the copy shares no pointers with the original.
func (r *WitnessRule) Copy() *WitnessRule {
	if r == nil {
		return nil
	}
	w := io.NewBufBinWriter()
	r.Condition.EncodeBinary(w.BinWriter)
	br := io.NewBinReaderFromBuf(w.Bytes())
	return &WitnessRule{
		Action:    r.Action,
		Condition: DecodeBinaryCondition(br),
	}
}

// EncodeBinary implements the io.Serializable interface.
func (r *WitnessRule) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(r.Action))
	r.Condition.EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (r *WitnessRule) DecodeBinary(br *io.BinReader) {
	action := br.ReadB()
	if br.Err != nil {
		return
	}
	switch WitnessAction(action) {
	case WitnessDeny, WitnessAllow:
		r.Action = WitnessAction(action)
	default:
		br.Err = fmt.Errorf("witness rule: unknown action %#x", action)
		return
	}
	r.Condition = DecodeBinaryCondition(br)
	if br.Err != nil {
		return
	}
	if r.Condition == nil {
		br.Err = fmt.Errorf("witness rule: empty condition")
	}
}

type witnessRuleAux struct {
	Action    string          `json:"action"`
	Condition json.RawMessage `json:"condition"`
}

// MarshalJSON implements the json.Marshaler interface.
func (r *WitnessRule) MarshalJSON() ([]byte, error) {
	cond, err := json.Marshal(r.Condition)
	if err != nil {
		return nil, err
	}
	return json.Marshal(witnessRuleAux{Action: r.Action.String(), Condition: cond})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *WitnessRule) UnmarshalJSON(data []byte) error {
	aux := new(witnessRuleAux)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	action, err := ActionFromString(aux.Action)
	if err != nil {
		return err
	}
	cond, err := UnmarshalConditionJSON(aux.Condition)
	if err != nil {
		return err
	}
	r.Action = action
	r.Condition = cond
	return nil
}
