package transaction

import "fmt"

// AttrType is the one-byte tag identifying a transaction attribute
// variant. The set is open in the sense that a whole band of tags
// (Reserved) is accepted without the framework understanding their
// payload; outside that band only the tags listed below are accepted, each
// naming a single known variant, and any other tag is rejected.
type AttrType byte

const (
	// HighPriority marks a transaction as fee-payer-is-committee
	// privileged; it carries no payload.
	HighPriority AttrType = 0x01
	// OracleResponseT tags an OracleResponse attribute.
	OracleResponseT AttrType = 0x11
	// NotValidBeforeT tags a NotValidBefore attribute.
	NotValidBeforeT AttrType = 0x20
	// ConflictsT tags a Conflicts attribute.
	ConflictsT AttrType = 0x21
	// NotaryAssistedT tags a NotaryAssisted attribute.
	NotaryAssistedT AttrType = 0x22

	// ReservedLowerBound and ReservedUpperBound bound the forward-
	// compatibility band: any tag in [ReservedLowerBound,
	// ReservedUpperBound] decodes into an opaque Reserved attribute
	// instead of failing.
	ReservedLowerBound AttrType = 0xe0
	ReservedUpperBound AttrType = 0xff
)

// IsReserved reports whether t falls in the forward-compatibility band.
func (t AttrType) IsReserved() bool {
	return t >= ReservedLowerBound && t <= ReservedUpperBound
}

// AllowMultiple reports whether a transaction's attribute vector may
// legally carry more than one instance of t.
func (t AttrType) AllowMultiple() bool {
	return t == ConflictsT
}

// String implements fmt.Stringer, the name used in the JSON "type" field.
func (t AttrType) String() string {
	switch t {
	case HighPriority:
		return "HighPriority"
	case OracleResponseT:
		return "OracleResponse"
	case NotValidBeforeT:
		return "NotValidBefore"
	case ConflictsT:
		return "Conflicts"
	case NotaryAssistedT:
		return "NotaryAssisted"
	default:
		if t.IsReserved() {
			return "Reserved"
		}
		return fmt.Sprintf("Unknown(%02x)", byte(t))
	}
}

// AttrTypeFromString is the inverse of String for the named variants.
// Reserved attributes have no single canonical name to parse back (many
// tags share the rendered name "Reserved"), so they are not accepted
// here; callers that need to round-trip a specific reserved tag through
// JSON must track the tag byte themselves.
func AttrTypeFromString(s string) (AttrType, error) {
	switch s {
	case "HighPriority":
		return HighPriority, nil
	case "OracleResponse":
		return OracleResponseT, nil
	case "NotValidBefore":
		return NotValidBeforeT, nil
	case "Conflicts":
		return ConflictsT, nil
	case "NotaryAssisted":
		return NotaryAssistedT, nil
	default:
		return 0, fmt.Errorf("attribute: unknown type name %q", s)
	}
}
