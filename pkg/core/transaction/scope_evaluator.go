package transaction

// Authorizes decides whether s's witness covers the contract currently
// executing, as seen through ctx. A signer's witness always authorizes
// its own account script running as the current context, independent of
// scope; beyond that self-check, every scope clause s carries is OR'd
// together: Global trumps everything, otherwise CalledByEntry,
// CustomContracts, CustomGroups and Rules are each checked independently
// and the signer authorizes the call the moment any one of them does.
//
// Within Rules, clauses are evaluated left to right and the first
// matching rule's action decides that clause's contribution; a Deny match
// simply means the Rules clause itself does not authorize the call, it
// does not veto authorization granted by one of the other clauses.
func (s *Signer) Authorizes(ctx MatchContext) (bool, error) {
	if ctx.GetCurrentScriptHash() == s.Account {
		return true, nil
	}
	if s.Scopes&Global != 0 {
		return true, nil
	}
	if s.Scopes&CalledByEntry != 0 {
		ok, err := ConditionCalledByEntry{}.Match(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	if s.Scopes&CustomContracts != 0 {
		cur := ctx.GetCurrentScriptHash()
		for _, c := range s.AllowedContracts {
			if c == cur {
				return true, nil
			}
		}
	}
	if s.Scopes&CustomGroups != 0 {
		for _, g := range s.AllowedGroups {
			ok, err := ctx.CurrentScriptHasGroup(g)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	if s.Scopes&Rules != 0 {
		for _, rule := range s.Rules {
			ok, err := rule.Condition.Match(ctx)
			if err != nil {
				return false, err
			}
			if ok {
				return rule.Action == WitnessAllow, nil
			}
		}
	}
	return false, nil
}
