package transaction

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nan01ab/neo/pkg/crypto/keys"
	"github.com/nan01ab/neo/pkg/io"
	"github.com/nan01ab/neo/pkg/util"
)

// maxSubitems bounds the number of children an And/Or condition may carry,
// and doubles as the cap applied to Signer's AllowedContracts/AllowedGroups/
// Rules lists.
const maxSubitems = 16

// MaxConditionNestingDepth is the deepest a condition tree may recurse
// below its root before decoding fails. A root condition counts as depth
// zero; each Not/And/Or child adds one.
const MaxConditionNestingDepth = 2

var errNestingExceeded = errors.New("witness condition: maximum nesting depth exceeded")

// MatchContext is the view of the executing transaction a WitnessCondition
// is evaluated against. It is supplied by the collaborator that actually
// runs scripts; this package only consumes it.
type MatchContext interface {
	GetCallingScriptHash() util.Uint160
	GetCurrentScriptHash() util.Uint160
	GetEntryScriptHash() util.Uint160
	CallingScriptHasGroup(pk *keys.PublicKey) (bool, error)
	CurrentScriptHasGroup(pk *keys.PublicKey) (bool, error)
}

// WitnessCondition is a node in the predicate tree a WitnessRule gates a
// signer's scope with. The set of concrete implementations below is
// closed; there is no extension mechanism at this layer.
type WitnessCondition interface {
	Type() WitnessConditionType
	Match(ctx MatchContext) (bool, error)
	EncodeBinary(w *io.BinWriter)
	DecodeBinarySpecific(r *io.BinReader, maxDepth int)
	MarshalJSON() ([]byte, error)
}

// conditionAux is the wire shape every condition's JSON form round-trips
// through; each variant populates only the fields it needs.
type conditionAux struct {
	Type        string            `json:"type"`
	Expression  json.RawMessage   `json:"expression,omitempty"`
	Expressions []json.RawMessage `json:"expressions,omitempty"`
	Hash        *util.Uint160     `json:"hash,omitempty"`
	Group       *keys.PublicKey   `json:"group,omitempty"`
}

// DecodeBinaryCondition reads one condition tree from r, starting a fresh
// nesting budget of MaxConditionNestingDepth.
func DecodeBinaryCondition(r *io.BinReader) WitnessCondition {
	return decodeCondition(r, MaxConditionNestingDepth)
}

func decodeCondition(r *io.BinReader, maxDepth int) WitnessCondition {
	if r.Err != nil {
		return nil
	}
	tag := r.ReadB()
	if r.Err != nil {
		return nil
	}
	var c WitnessCondition
	switch WitnessConditionType(tag) {
	case WitnessBoolean:
		c = new(ConditionBoolean)
	case WitnessNot:
		c = new(ConditionNot)
	case WitnessAnd:
		c = new(ConditionAnd)
	case WitnessOr:
		c = new(ConditionOr)
	case WitnessScriptHash:
		c = new(ConditionScriptHash)
	case WitnessGroup:
		c = new(ConditionGroup)
	case WitnessCalledByEntry:
		c = ConditionCalledByEntry{}
	case WitnessCalledByContract:
		c = new(ConditionCalledByContract)
	case WitnessCalledByGroup:
		c = new(ConditionCalledByGroup)
	default:
		r.Err = fmt.Errorf("unknown witness condition type %#x", tag)
		return nil
	}
	c.DecodeBinarySpecific(r, maxDepth)
	if r.Err != nil {
		return nil
	}
	return c
}

// UnmarshalConditionJSON decodes a condition tree from its JSON form,
// dispatching on the "type" discriminator, with the same nesting budget of
// MaxConditionNestingDepth that DecodeBinaryCondition applies.
func UnmarshalConditionJSON(data []byte) (WitnessCondition, error) {
	return unmarshalConditionJSON(data, MaxConditionNestingDepth)
}

func unmarshalConditionJSON(data []byte, maxDepth int) (WitnessCondition, error) {
	aux := new(conditionAux)
	if err := json.Unmarshal(data, aux); err != nil {
		return nil, err
	}
	typ, err := ConditionTypeFromString(aux.Type)
	if err != nil {
		return nil, err
	}
	switch typ {
	case WitnessBoolean:
		if len(aux.Expression) == 0 {
			return nil, errors.New("witness condition: missing expression")
		}
		var b bool
		if err := json.Unmarshal(aux.Expression, &b); err != nil {
			return nil, err
		}
		c := ConditionBoolean(b)
		return &c, nil
	case WitnessNot:
		if len(aux.Expression) == 0 {
			return nil, errors.New("witness condition: missing expression")
		}
		if maxDepth <= 0 {
			return nil, errNestingExceeded
		}
		inner, err := unmarshalConditionJSON(aux.Expression, maxDepth-1)
		if err != nil {
			return nil, err
		}
		return &ConditionNot{Condition: inner}, nil
	case WitnessAnd, WitnessOr:
		if len(aux.Expressions) == 0 || len(aux.Expressions) > maxSubitems {
			return nil, fmt.Errorf("witness condition: invalid expressions count %d", len(aux.Expressions))
		}
		if maxDepth <= 0 {
			return nil, errNestingExceeded
		}
		conds := make([]WitnessCondition, len(aux.Expressions))
		for i, raw := range aux.Expressions {
			cond, err := unmarshalConditionJSON(raw, maxDepth-1)
			if err != nil {
				return nil, err
			}
			conds[i] = cond
		}
		if typ == WitnessAnd {
			cc := ConditionAnd(conds)
			return &cc, nil
		}
		cc := ConditionOr(conds)
		return &cc, nil
	case WitnessScriptHash:
		if aux.Hash == nil {
			return nil, errors.New("witness condition: missing hash")
		}
		cc := ConditionScriptHash(*aux.Hash)
		return &cc, nil
	case WitnessGroup:
		if aux.Group == nil {
			return nil, errors.New("witness condition: missing group")
		}
		cc := ConditionGroup(*aux.Group)
		return &cc, nil
	case WitnessCalledByEntry:
		return ConditionCalledByEntry{}, nil
	case WitnessCalledByContract:
		if aux.Hash == nil {
			return nil, errors.New("witness condition: missing hash")
		}
		cc := ConditionCalledByContract(*aux.Hash)
		return &cc, nil
	case WitnessCalledByGroup:
		if aux.Group == nil {
			return nil, errors.New("witness condition: missing group")
		}
		cc := ConditionCalledByGroup(*aux.Group)
		return &cc, nil
	default:
		return nil, fmt.Errorf("witness condition: unknown type %q", aux.Type)
	}
}

// ConditionBoolean is a constant predicate, true or false regardless of
// context. Mostly useful composed inside And/Or/Not, or as a placeholder.
type ConditionBoolean bool

func (c *ConditionBoolean) Type() WitnessConditionType { return WitnessBoolean }

func (c *ConditionBoolean) Match(_ MatchContext) (bool, error) {
	return bool(*c), nil
}

func (c *ConditionBoolean) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteBool(bool(*c))
}

func (c *ConditionBoolean) DecodeBinarySpecific(r *io.BinReader, _ int) {
	*c = ConditionBoolean(r.ReadBool())
}

func (c *ConditionBoolean) MarshalJSON() ([]byte, error) {
	expr, err := json.Marshal(bool(*c))
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionAux{Type: c.Type().String(), Expression: expr})
}

// ConditionNot negates its single child.
type ConditionNot struct {
	Condition WitnessCondition
}

func (c *ConditionNot) Type() WitnessConditionType { return WitnessNot }

func (c *ConditionNot) Match(ctx MatchContext) (bool, error) {
	res, err := c.Condition.Match(ctx)
	if err != nil {
		return false, err
	}
	return !res, nil
}

func (c *ConditionNot) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	c.Condition.EncodeBinary(w)
}

func (c *ConditionNot) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	if maxDepth <= 0 {
		r.Err = errNestingExceeded
		return
	}
	c.Condition = decodeCondition(r, maxDepth-1)
}

func (c *ConditionNot) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(c.Condition)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionAux{Type: c.Type().String(), Expression: inner})
}

// ConditionAnd requires every child to match, short-circuiting (and
// propagating any error) at the first false/errored child.
type ConditionAnd []WitnessCondition

func (c *ConditionAnd) Type() WitnessConditionType { return WitnessAnd }

func (c *ConditionAnd) Match(ctx MatchContext) (bool, error) {
	for _, cond := range *c {
		res, err := cond.Match(ctx)
		if err != nil {
			return false, err
		}
		if !res {
			return false, nil
		}
	}
	return true, nil
}

func (c *ConditionAnd) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteVarUint(uint64(len(*c)))
	for _, cond := range *c {
		cond.EncodeBinary(w)
	}
}

func (c *ConditionAnd) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	if maxDepth <= 0 {
		r.Err = errNestingExceeded
		return
	}
	n := r.ReadVarUint()
	if r.Err != nil {
		return
	}
	if n == 0 || n > maxSubitems {
		r.Err = fmt.Errorf("witness condition: invalid number of subconditions %d", n)
		return
	}
	conds := make(ConditionAnd, 0, n)
	for i := uint64(0); i < n; i++ {
		cond := decodeCondition(r, maxDepth-1)
		if r.Err != nil {
			return
		}
		conds = append(conds, cond)
	}
	*c = conds
}

func (c *ConditionAnd) MarshalJSON() ([]byte, error) {
	exprs, err := marshalConditionList(*c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionAux{Type: c.Type().String(), Expressions: exprs})
}

// ConditionOr requires at least one child to match, short-circuiting at
// the first true child.
type ConditionOr []WitnessCondition

func (c *ConditionOr) Type() WitnessConditionType { return WitnessOr }

func (c *ConditionOr) Match(ctx MatchContext) (bool, error) {
	for _, cond := range *c {
		res, err := cond.Match(ctx)
		if err != nil {
			return false, err
		}
		if res {
			return true, nil
		}
	}
	return false, nil
}

func (c *ConditionOr) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteVarUint(uint64(len(*c)))
	for _, cond := range *c {
		cond.EncodeBinary(w)
	}
}

func (c *ConditionOr) DecodeBinarySpecific(r *io.BinReader, maxDepth int) {
	if maxDepth <= 0 {
		r.Err = errNestingExceeded
		return
	}
	n := r.ReadVarUint()
	if r.Err != nil {
		return
	}
	if n == 0 || n > maxSubitems {
		r.Err = fmt.Errorf("witness condition: invalid number of subconditions %d", n)
		return
	}
	conds := make(ConditionOr, 0, n)
	for i := uint64(0); i < n; i++ {
		cond := decodeCondition(r, maxDepth-1)
		if r.Err != nil {
			return
		}
		conds = append(conds, cond)
	}
	*c = conds
}

func (c *ConditionOr) MarshalJSON() ([]byte, error) {
	exprs, err := marshalConditionList(*c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(conditionAux{Type: c.Type().String(), Expressions: exprs})
}

func marshalConditionList(conds []WitnessCondition) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(conds))
	for i, cond := range conds {
		b, err := json.Marshal(cond)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// ConditionScriptHash matches when the currently executing script's hash
// equals the configured one.
type ConditionScriptHash util.Uint160

func (c *ConditionScriptHash) Type() WitnessConditionType { return WitnessScriptHash }

func (c *ConditionScriptHash) Match(ctx MatchContext) (bool, error) {
	return ctx.GetCurrentScriptHash() == util.Uint160(*c), nil
}

func (c *ConditionScriptHash) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteBytes(c[:])
}

func (c *ConditionScriptHash) DecodeBinarySpecific(r *io.BinReader, _ int) {
	r.ReadBytes(c[:])
}

func (c *ConditionScriptHash) MarshalJSON() ([]byte, error) {
	h := util.Uint160(*c)
	return json.Marshal(conditionAux{Type: c.Type().String(), Hash: &h})
}

// ConditionGroup matches when the currently executing script belongs to
// the given manifest group.
type ConditionGroup keys.PublicKey

func (c *ConditionGroup) Type() WitnessConditionType { return WitnessGroup }

func (c *ConditionGroup) Match(ctx MatchContext) (bool, error) {
	return ctx.CurrentScriptHasGroup((*keys.PublicKey)(c))
}

func (c *ConditionGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteBytes((*keys.PublicKey)(c).Bytes())
}

func (c *ConditionGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	(*keys.PublicKey)(c).DecodeBinary(r)
}

func (c *ConditionGroup) MarshalJSON() ([]byte, error) {
	pk := (*keys.PublicKey)(c)
	return json.Marshal(conditionAux{Type: c.Type().String(), Group: pk})
}

// ConditionCalledByEntry matches when the entry point of the execution is
// either the currently executing script or the one that invoked it. It
// carries no payload.
type ConditionCalledByEntry struct{}

func (c ConditionCalledByEntry) Type() WitnessConditionType { return WitnessCalledByEntry }

func (c ConditionCalledByEntry) Match(ctx MatchContext) (bool, error) {
	entry := ctx.GetEntryScriptHash()
	return ctx.GetCurrentScriptHash() == entry || ctx.GetCallingScriptHash() == entry, nil
}

func (c ConditionCalledByEntry) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
}

func (c ConditionCalledByEntry) DecodeBinarySpecific(_ *io.BinReader, _ int) {}

func (c ConditionCalledByEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionAux{Type: c.Type().String()})
}

// ConditionCalledByContract matches when the immediate caller's script
// hash equals the configured one.
type ConditionCalledByContract util.Uint160

func (c *ConditionCalledByContract) Type() WitnessConditionType { return WitnessCalledByContract }

func (c *ConditionCalledByContract) Match(ctx MatchContext) (bool, error) {
	return ctx.GetCallingScriptHash() == util.Uint160(*c), nil
}

func (c *ConditionCalledByContract) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteBytes(c[:])
}

func (c *ConditionCalledByContract) DecodeBinarySpecific(r *io.BinReader, _ int) {
	r.ReadBytes(c[:])
}

func (c *ConditionCalledByContract) MarshalJSON() ([]byte, error) {
	h := util.Uint160(*c)
	return json.Marshal(conditionAux{Type: c.Type().String(), Hash: &h})
}

// ConditionCalledByGroup matches when the immediate caller belongs to the
// given manifest group.
type ConditionCalledByGroup keys.PublicKey

func (c *ConditionCalledByGroup) Type() WitnessConditionType { return WitnessCalledByGroup }

func (c *ConditionCalledByGroup) Match(ctx MatchContext) (bool, error) {
	return ctx.CallingScriptHasGroup((*keys.PublicKey)(c))
}

func (c *ConditionCalledByGroup) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(c.Type()))
	w.WriteBytes((*keys.PublicKey)(c).Bytes())
}

func (c *ConditionCalledByGroup) DecodeBinarySpecific(r *io.BinReader, _ int) {
	(*keys.PublicKey)(c).DecodeBinary(r)
}

func (c *ConditionCalledByGroup) MarshalJSON() ([]byte, error) {
	pk := (*keys.PublicKey)(c)
	return json.Marshal(conditionAux{Type: c.Type().String(), Group: pk})
}
