package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/nan01ab/neo/pkg/crypto/keys"
	"github.com/nan01ab/neo/pkg/io"
	"github.com/nan01ab/neo/pkg/util"
)

// Signer binds an account to the scopes under which its witness authorizes
// contract calls within a transaction. AllowedContracts/AllowedGroups/Rules
// are only meaningful (and only populated) when the corresponding scope
// bit is set; each list is capped at maxSubitems entries.
type Signer struct {
	Account          util.Uint160
	Scopes           WitnessScope
	AllowedContracts []util.Uint160
	AllowedGroups    []*keys.PublicKey
	Rules            []WitnessRule
}

// Copy returns a deep copy of s.
func (s *Signer) Copy() *Signer {
	if s == nil {
		return nil
	}
	cp := &Signer{
		Account: s.Account,
		Scopes:  s.Scopes,
	}
	if s.AllowedContracts != nil {
		cp.AllowedContracts = append([]util.Uint160(nil), s.AllowedContracts...)
	}
	if s.AllowedGroups != nil {
		cp.AllowedGroups = append([]*keys.PublicKey(nil), s.AllowedGroups...)
	}
	if s.Rules != nil {
		cp.Rules = make([]WitnessRule, len(s.Rules))
		for i, r := range s.Rules {
			cp.Rules[i] = *r.Copy()
		}
	}
	return cp
}

// validate checks the structural invariants a Signer must satisfy
// regardless of where it was decoded from: no reserved scope bits, no
// non-empty list without its gating scope bit, and the maxSubitems cap on
// every list.
func (s *Signer) validate() error {
	if _, err := ScopesFromByte(byte(s.Scopes)); err != nil {
		return err
	}
	if len(s.AllowedContracts) > maxSubitems {
		return fmt.Errorf("signer: too many allowed contracts (%d > %d)", len(s.AllowedContracts), maxSubitems)
	}
	if len(s.AllowedGroups) > maxSubitems {
		return fmt.Errorf("signer: too many allowed groups (%d > %d)", len(s.AllowedGroups), maxSubitems)
	}
	if len(s.Rules) > maxSubitems {
		return fmt.Errorf("signer: too many rules (%d > %d)", len(s.Rules), maxSubitems)
	}
	if len(s.AllowedContracts) > 0 && s.Scopes&CustomContracts == 0 {
		return fmt.Errorf("signer: AllowedContracts set without CustomContracts scope")
	}
	if len(s.AllowedGroups) > 0 && s.Scopes&CustomGroups == 0 {
		return fmt.Errorf("signer: AllowedGroups set without CustomGroups scope")
	}
	if len(s.Rules) > 0 && s.Scopes&Rules == 0 {
		return fmt.Errorf("signer: Rules set without Rules scope")
	}
	return nil
}

// EncodeBinary implements the io.Serializable interface.
func (s *Signer) EncodeBinary(w *io.BinWriter) {
	s.Account.EncodeBinary(w)
	w.WriteB(byte(s.Scopes))
	if s.Scopes&CustomContracts != 0 {
		w.WriteVarUint(uint64(len(s.AllowedContracts)))
		for _, c := range s.AllowedContracts {
			c.EncodeBinary(w)
		}
	}
	if s.Scopes&CustomGroups != 0 {
		w.WriteVarUint(uint64(len(s.AllowedGroups)))
		for _, g := range s.AllowedGroups {
			g.EncodeBinary(w)
		}
	}
	if s.Scopes&Rules != 0 {
		w.WriteVarUint(uint64(len(s.Rules)))
		for i := range s.Rules {
			s.Rules[i].EncodeBinary(w)
		}
	}
}

// DecodeBinary implements the io.Serializable interface.
func (s *Signer) DecodeBinary(r *io.BinReader) {
	s.Account.DecodeBinary(r)
	scopeByte := r.ReadB()
	if r.Err != nil {
		return
	}
	scopes, err := ScopesFromByte(scopeByte)
	if err != nil {
		r.Err = err
		return
	}
	s.Scopes = scopes

	if scopes&CustomContracts != 0 {
		n := r.ReadVarUint()
		if r.Err != nil {
			return
		}
		if n > maxSubitems {
			r.Err = fmt.Errorf("signer: too many allowed contracts (%d > %d)", n, maxSubitems)
			return
		}
		s.AllowedContracts = make([]util.Uint160, n)
		for i := range s.AllowedContracts {
			s.AllowedContracts[i].DecodeBinary(r)
			if r.Err != nil {
				return
			}
		}
	}
	if scopes&CustomGroups != 0 {
		n := r.ReadVarUint()
		if r.Err != nil {
			return
		}
		if n > maxSubitems {
			r.Err = fmt.Errorf("signer: too many allowed groups (%d > %d)", n, maxSubitems)
			return
		}
		s.AllowedGroups = make([]*keys.PublicKey, n)
		for i := range s.AllowedGroups {
			pk := new(keys.PublicKey)
			pk.DecodeBinary(r)
			if r.Err != nil {
				return
			}
			s.AllowedGroups[i] = pk
		}
	}
	if scopes&Rules != 0 {
		n := r.ReadVarUint()
		if r.Err != nil {
			return
		}
		if n > maxSubitems {
			r.Err = fmt.Errorf("signer: too many rules (%d > %d)", n, maxSubitems)
			return
		}
		s.Rules = make([]WitnessRule, n)
		for i := range s.Rules {
			s.Rules[i].DecodeBinary(r)
			if r.Err != nil {
				return
			}
		}
	}
}

type signerAux struct {
	Account          util.Uint160      `json:"account"`
	Scopes           string            `json:"scopes"`
	AllowedContracts []util.Uint160    `json:"allowedcontracts,omitempty"`
	AllowedGroups    []*keys.PublicKey `json:"allowedgroups,omitempty"`
	Rules            []WitnessRule     `json:"rules,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (s *Signer) MarshalJSON() ([]byte, error) {
	return json.Marshal(signerAux{
		Account:          s.Account,
		Scopes:           s.Scopes.String(),
		AllowedContracts: s.AllowedContracts,
		AllowedGroups:    s.AllowedGroups,
		Rules:            s.Rules,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signer) UnmarshalJSON(data []byte) error {
	aux := new(signerAux)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	scopes, err := ScopesFromString(aux.Scopes)
	if err != nil {
		return err
	}
	s.Account = aux.Account
	s.Scopes = scopes
	s.AllowedContracts = aux.AllowedContracts
	s.AllowedGroups = aux.AllowedGroups
	s.Rules = aux.Rules
	return s.validate()
}
