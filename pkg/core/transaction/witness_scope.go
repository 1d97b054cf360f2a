package transaction

import (
	"fmt"
	"strings"
)

// WitnessScope is a bitmask describing which contracts a signer's witness
// authorizes. Scopes compose by OR across the clauses a Signer specifies;
// Global short-circuits all other checks.
type WitnessScope byte

const (
	// None authorizes no other contract: the signer is present (e.g. to
	// satisfy a multi-sig threshold) and its witness covers only its own
	// account script running as the current context (the self-check every
	// scope shares, see Signer.Authorizes).
	None WitnessScope = 0x00
	// CalledByEntry authorizes only the entry script and any script the
	// entry script calls directly.
	CalledByEntry WitnessScope = 0x01
	// CustomContracts authorizes the scripts listed in AllowedContracts.
	CustomContracts WitnessScope = 0x10
	// CustomGroups authorizes scripts belonging to any of the manifest
	// groups listed in AllowedGroups.
	CustomGroups WitnessScope = 0x20
	// Rules authorizes whatever the signer's WitnessRule list decides.
	Rules WitnessScope = 0x40
	// Global authorizes every contract unconditionally. It may not be
	// combined with any other scope.
	Global WitnessScope = 0x80
)

// validScopeBits is the OR of every scope this version understands; any
// other set bit in a wire byte is a protocol violation.
const validScopeBits = byte(CalledByEntry | CustomContracts | CustomGroups | Rules | Global)

// ScopesFromByte validates and converts a raw wire byte into a WitnessScope,
// rejecting unknown bits and the Global-combined-with-others case.
func ScopesFromByte(b byte) (WitnessScope, error) {
	if b&^validScopeBits != 0 {
		return 0, fmt.Errorf("witness scope: unknown bits set in %#x", b)
	}
	s := WitnessScope(b)
	if s&Global != 0 && s != Global {
		return 0, fmt.Errorf("witness scope: Global cannot be combined with other scopes (%#x)", b)
	}
	return s, nil
}

// String renders the scope as a comma-separated list of its component
// names, matching the JSON/CLI representation.
func (s WitnessScope) String() string {
	if s == None {
		return "None"
	}
	if s == Global {
		return "Global"
	}
	var parts []string
	if s&CalledByEntry != 0 {
		parts = append(parts, "CalledByEntry")
	}
	if s&CustomContracts != 0 {
		parts = append(parts, "CustomContracts")
	}
	if s&CustomGroups != 0 {
		parts = append(parts, "CustomGroups")
	}
	if s&Rules != 0 {
		parts = append(parts, "Rules")
	}
	return strings.Join(parts, ", ")
}

// ScopesFromString parses the comma-separated textual form back into a
// WitnessScope, the inverse of String.
func ScopesFromString(s string) (WitnessScope, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("witness scope: empty scope string")
	}
	if s == "None" {
		return None, nil
	}
	if s == "Global" {
		return Global, nil
	}
	var out WitnessScope
	for _, part := range strings.Split(s, ",") {
		switch strings.TrimSpace(part) {
		case "CalledByEntry":
			out |= CalledByEntry
		case "CustomContracts":
			out |= CustomContracts
		case "CustomGroups":
			out |= CustomGroups
		case "Rules", "WitnessRules":
			out |= Rules
		case "Global":
			return 0, fmt.Errorf("witness scope: Global cannot be combined with other scopes (%q)", s)
		default:
			return 0, fmt.Errorf("witness scope: unknown scope name %q", part)
		}
	}
	return out, nil
}
