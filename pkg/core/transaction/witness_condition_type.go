package transaction

import "fmt"

// WitnessConditionType is the one-byte tag identifying a WitnessCondition
// variant on the wire (spec §3).
type WitnessConditionType byte

// The full, closed set of witness condition tags. Values match the wire
// protocol exactly; an implementation MUST reject any other byte.
const (
	WitnessBoolean          WitnessConditionType = 0x00
	WitnessNot              WitnessConditionType = 0x01
	WitnessAnd              WitnessConditionType = 0x02
	WitnessOr               WitnessConditionType = 0x03
	WitnessScriptHash       WitnessConditionType = 0x18
	WitnessGroup            WitnessConditionType = 0x19
	WitnessCalledByEntry    WitnessConditionType = 0x20
	WitnessCalledByContract WitnessConditionType = 0x28
	WitnessCalledByGroup    WitnessConditionType = 0x29
)

// String implements fmt.Stringer, returning the name used on the wire in
// JSON (spec §6 "type" field).
func (t WitnessConditionType) String() string {
	switch t {
	case WitnessBoolean:
		return "Boolean"
	case WitnessNot:
		return "Not"
	case WitnessAnd:
		return "And"
	case WitnessOr:
		return "Or"
	case WitnessScriptHash:
		return "ScriptHash"
	case WitnessGroup:
		return "Group"
	case WitnessCalledByEntry:
		return "CalledByEntry"
	case WitnessCalledByContract:
		return "CalledByContract"
	case WitnessCalledByGroup:
		return "CalledByGroup"
	default:
		return fmt.Sprintf("Unknown(%02x)", byte(t))
	}
}

// ConditionTypeFromString resolves a JSON "type" name back to its tag,
// rejecting anything outside the closed set (spec §3: "the predicate
// language is fixed and closed").
func ConditionTypeFromString(s string) (WitnessConditionType, error) {
	switch s {
	case "Boolean":
		return WitnessBoolean, nil
	case "Not":
		return WitnessNot, nil
	case "And":
		return WitnessAnd, nil
	case "Or":
		return WitnessOr, nil
	case "ScriptHash":
		return WitnessScriptHash, nil
	case "Group":
		return WitnessGroup, nil
	case "CalledByEntry":
		return WitnessCalledByEntry, nil
	case "CalledByContract":
		return WitnessCalledByContract, nil
	case "CalledByGroup":
		return WitnessCalledByGroup, nil
	default:
		return 0, fmt.Errorf("unknown witness condition type %q", s)
	}
}
