// Package committee answers CommitteeView queries against a static set of
// script hashes, the way the teacher's native NEO contract answers
// committee-membership checks against its own on-chain committee list,
// except here the set is fixed at construction time from configuration
// rather than tracked through on-chain voting.
package committee

import (
	"fmt"

	"github.com/nan01ab/neo/pkg/crypto/keys"
	"github.com/nan01ab/neo/pkg/util"
	"go.uber.org/zap"
)

// Set implements transaction.CommitteeView over a fixed membership list.
type Set struct {
	log     *zap.Logger
	members map[util.Uint160]struct{}
}

// New builds a Set from the NEO addresses listed in a protocol config's
// Committee field, rejecting any address that fails to decode.
func New(log *zap.Logger, addresses []string) (*Set, error) {
	members := make(map[util.Uint160]struct{}, len(addresses))
	for _, addr := range addresses {
		h, err := keys.AddressToScriptHash(addr)
		if err != nil {
			return nil, fmt.Errorf("committee: invalid address %q: %w", addr, err)
		}
		members[h] = struct{}{}
	}
	return &Set{log: log, members: members}, nil
}

// IsCommitteeMember implements transaction.CommitteeView.
func (s *Set) IsCommitteeMember(h util.Uint160) bool {
	_, ok := s.members[h]
	if s.log != nil {
		s.log.Debug("committee membership check",
			zap.Stringer("account", h),
			zap.Bool("member", ok))
	}
	return ok
}

// Len reports the committee size.
func (s *Set) Len() int {
	return len(s.members)
}
