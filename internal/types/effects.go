package types

import (
	"sort"
	"strings"
)

// EffectSymbol is the nominal identity of a declared effect. It is
// implemented by internal/symtab's effect symbol type; types does not
// import symtab to avoid a cycle (the symbol needs to carry a Type, and
// a Type needs to name its effects).
type EffectSymbol interface {
	EffectName() string
	// Builtin reports whether this is one of the handful of effects the
	// runtime treats specially (spec §4.3: partition into builtin vs
	// userDefined).
	Builtin() bool
}

// Effect is a named symbol, an application, or an alias reference (spec §3).
type Effect interface {
	isEffect()
	String() string
	dealiasEffect() Effect
}

// EffectRef names a declared effect by its symbol.
type EffectRef struct {
	Symbol EffectSymbol
}

func (EffectRef) isEffect()            {}
func (e EffectRef) String() string     { return e.Symbol.EffectName() }
func (e EffectRef) dealiasEffect() Effect { return e }

// EffectApp applies an effect constructor to value-type arguments
// (spec §3: "EffectApp(e, args)").
type EffectApp struct {
	Head Effect
	Args []ValueType
}

func (EffectApp) isEffect() {}
func (e EffectApp) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Head.String() + "[" + strings.Join(args, ", ") + "]"
}
func (e EffectApp) dealiasEffect() Effect {
	if alias, ok := e.Head.dealiasEffect().(*EffectAliasRef); ok {
		return alias.Alias.instantiate(e.Args).dealiasEffect()
	}
	return EffectApp{Head: e.Head.dealiasEffect(), Args: e.Args}
}

// EffectAlias is a named alias for an effect expression, with parameters.
type EffectAlias struct {
	Name   string
	Params []*TypeVar
	Body   Effect
}

func (a *EffectAlias) instantiate(args []ValueType) Effect {
	// Body is returned as is for every alias: the alias's parameters are
	// not substituted into it, whatever args are given.
	if len(a.Params) == 0 || len(args) != len(a.Params) {
		return a.Body
	}
	return a.Body
}

// EffectAliasRef references an EffectAlias (unapplied, i.e. zero-arg use).
type EffectAliasRef struct {
	Alias *EffectAlias
}

func (EffectAliasRef) isEffect()        {}
func (e EffectAliasRef) String() string { return e.Alias.Name }
func (e EffectAliasRef) dealiasEffect() Effect {
	if len(e.Alias.Params) == 0 {
		return e.Alias.Body.dealiasEffect()
	}
	return e
}

// EffectEqual compares two effects up to alias expansion (spec §4.3:
// "contains(e) expands aliases on both sides").
func EffectEqual(a, b Effect) bool {
	da, db := a.dealiasEffect(), b.dealiasEffect()
	switch av := da.(type) {
	case EffectRef:
		bv, ok := db.(EffectRef)
		return ok && av.Symbol == bv.Symbol
	case EffectApp:
		bv, ok := db.(EffectApp)
		if !ok || len(av.Args) != len(bv.Args) || !EffectEqual(av.Head, bv.Head) {
			return false
		}
		for i := range av.Args {
			if !ValueTypeEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case *EffectAliasRef:
		bv, ok := db.(*EffectAliasRef)
		return ok && av.Alias == bv.Alias
	default:
		return false
	}
}

// EffectSet is a duplicate-free, alias-expanded collection of effects
// (spec §3/§4.3). The zero value is the empty (pure) row. The only way to
// build a non-empty EffectSet is the Effects smart constructor, which
// dealiases every member on construction (spec: "Effects(...) is the
// *only* way to produce a row").
type EffectSet struct {
	members []Effect
}

// Effects is the smart constructor: it dealiases every effect and
// deduplicates (spec: "the stored list never contains aliases").
func Effects(effects ...Effect) EffectSet {
	var out []Effect
	for _, e := range effects {
		de := e.dealiasEffect()
		dup := false
		for _, existing := range out {
			if EffectEqual(existing, de) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, de)
		}
	}
	return EffectSet{members: out}
}

// Members returns the row's effects (already dealiased).
func (es EffectSet) Members() []Effect { return es.members }

// IsEmpty reports the empty / pure row.
func (es EffectSet) IsEmpty() bool { return len(es.members) == 0 }

// Contains reports whether e (expanded) is a member of the row (spec:
// "contains(e) expands aliases on both sides").
func (es EffectSet) Contains(e Effect) bool {
	de := e.dealiasEffect()
	for _, m := range es.members {
		if EffectEqual(m, de) {
			return true
		}
	}
	return false
}

// Union (++) combines two rows (spec §4.3: "filter, ++, --, userDefined,
// userEffects preserve the invariant").
func (es EffectSet) Union(other EffectSet) EffectSet {
	return Effects(append(append([]Effect{}, es.members...), other.members...)...)
}

// Difference (--) removes other's effects from es.
func (es EffectSet) Difference(other EffectSet) EffectSet {
	var out []Effect
	for _, m := range es.members {
		if !other.Contains(m) {
			out = append(out, m)
		}
	}
	return EffectSet{members: out}
}

// Filter keeps only members matching pred.
func (es EffectSet) Filter(pred func(Effect) bool) EffectSet {
	var out []Effect
	for _, m := range es.members {
		if pred(m) {
			out = append(out, m)
		}
	}
	return EffectSet{members: out}
}

// builtinSymbolOf extracts the symbol of an effect if it (or its head, for
// an application) is a plain EffectRef.
func builtinSymbolOf(e Effect) (EffectSymbol, bool) {
	switch v := e.dealiasEffect().(type) {
	case EffectRef:
		return v.Symbol, true
	case EffectApp:
		return builtinSymbolOf(v.Head)
	default:
		return nil, false
	}
}

// Partition splits the row into builtin and user-defined effects (spec
// §4.3: "partition into builtin vs userDefined").
func (es EffectSet) Partition() (builtin, userDefined EffectSet) {
	builtin = es.Filter(func(e Effect) bool {
		sym, ok := builtinSymbolOf(e)
		return ok && sym.Builtin()
	})
	userDefined = es.Filter(func(e Effect) bool {
		sym, ok := builtinSymbolOf(e)
		return !ok || !sym.Builtin()
	})
	return
}

// UserDefined returns only the user-defined effects (convenience wrapper
// named after spec §4.3's "userEffects" operator).
func (es EffectSet) UserDefined() EffectSet {
	_, user := es.Partition()
	return user
}

// Dealias re-dealiases every member (idempotent, since Effects() already
// dealiases on construction; provided for symmetry with ValueType/BlockType).
func (es EffectSet) Dealias() EffectSet { return Effects(es.members...) }

// EffectSetEqual is value equality = mutual subset (spec §3/§4.3).
func EffectSetEqual(a, b EffectSet) bool {
	if len(a.members) != len(b.members) {
		return false
	}
	for _, m := range a.members {
		if !b.Contains(m) {
			return false
		}
	}
	return true
}

func (es EffectSet) String() string {
	if es.IsEmpty() {
		return "{}"
	}
	strs := make([]string, len(es.members))
	for i, m := range es.members {
		strs[i] = m.String()
	}
	sort.Strings(strs)
	return "{" + strings.Join(strs, ", ") + "}"
}
