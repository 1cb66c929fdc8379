package types

import "testing"

type testEffectSymbol struct {
	name    string
	builtin bool
}

func (s *testEffectSymbol) EffectName() string { return s.name }
func (s *testEffectSymbol) Builtin() bool      { return s.builtin }

func TestDealiasTypeApp(t *testing.T) {
	param := &TypeVar{Name: "A"}
	alias := &Alias{Name: "Box", Params: []*TypeVar{param}, Body: &TypeApp{
		Head: &Builtin{Name: "List"},
		Args: []ValueType{param},
	}}
	app := &TypeApp{Head: alias, Args: []ValueType{&Builtin{Name: "Int"}}}

	got := app.Dealias()
	want := &TypeApp{Head: &Builtin{Name: "List"}, Args: []ValueType{&Builtin{Name: "Int"}}}
	if !ValueTypeEqual(got, want) {
		t.Errorf("Dealias(Box[Int]) = %s, want %s", got.String(), want.String())
	}
}

func TestDealiasParameterlessAlias(t *testing.T) {
	alias := &Alias{Name: "MyInt", Body: &Builtin{Name: "Int"}}
	if !ValueTypeEqual(alias.Dealias(), &Builtin{Name: "Int"}) {
		t.Errorf("parameterless alias should dealias to its body")
	}
}

func TestEffectSetInvariants(t *testing.T) {
	exc := EffectRef{Symbol: &testEffectSymbol{name: "Exc"}}
	io := EffectRef{Symbol: &testEffectSymbol{name: "IO", builtin: true}}

	a := Effects(exc, io)
	b := Effects(io, exc) // different insertion order

	// reflexive
	if !EffectSetEqual(a, a) {
		t.Error("expected reflexive equality")
	}
	// symmetric
	if EffectSetEqual(a, b) != EffectSetEqual(b, a) {
		t.Error("expected symmetric equality")
	}
	if !EffectSetEqual(a, b) {
		t.Error("expected order-independent equality")
	}

	c := Effects(exc, io, exc) // duplicate
	// transitive via dedup: a == b == c
	if !EffectSetEqual(b, c) {
		t.Error("expected transitive equality through dedup")
	}

	builtin, user := a.Partition()
	if builtin.IsEmpty() || !builtin.Contains(io) {
		t.Errorf("expected IO in builtin partition, got %s", builtin)
	}
	if user.IsEmpty() || !user.Contains(exc) {
		t.Errorf("expected Exc in userDefined partition, got %s", user)
	}
}

func TestEffectSetAliasInvariance(t *testing.T) {
	excSym := &testEffectSymbol{name: "Exc"}
	direct := Effects(EffectRef{Symbol: excSym})

	alias := &EffectAlias{Name: "MyExc", Body: EffectRef{Symbol: excSym}}
	aliased := Effects(&EffectAliasRef{Alias: alias})

	if !EffectSetEqual(direct, aliased) {
		t.Errorf("effect-set equality must be invariant under alias expansion: %s vs %s", direct, aliased)
	}
}

func TestEffectsSmartConstructorNeverStoresAlias(t *testing.T) {
	excSym := &testEffectSymbol{name: "Exc"}
	alias := &EffectAlias{Name: "MyExc", Body: EffectRef{Symbol: excSym}}
	set := Effects(&EffectAliasRef{Alias: alias})
	for _, m := range set.Members() {
		if _, ok := m.(*EffectAliasRef); ok {
			t.Errorf("Effects() must dealias aliases on construction, found %s", m)
		}
	}
}

func TestCaptureSetPureOrIO(t *testing.T) {
	region := &Region{Label: "r"}
	pureOrIO := NewCaptureSet(IO, region, &Resource{Label: "file"})
	if !pureOrIO.IsPureOrIO() {
		t.Error("IO+region+resource should be pure-or-IO")
	}
	withControl := NewCaptureSet(IO, ControlCapability)
	if withControl.IsPureOrIO() {
		t.Error("presence of control capability must not be pure-or-IO")
	}
	if !Empty.IsEmpty() {
		t.Error("Empty capture set must be empty (purity)")
	}
}

func TestCaptureSetIdentity(t *testing.T) {
	r1 := &Region{Label: "r"}
	r2 := &Region{Label: "r"} // same label, distinct identity
	cs := NewCaptureSet(r1)
	if cs.Contains(r2) {
		t.Error("captures must be compared by identity, not structural equality")
	}
	if !cs.Contains(r1) {
		t.Error("expected identity match for the same pointer")
	}
}

func TestCaptureSetUnionDedup(t *testing.T) {
	a := NewCaptureSet(IO)
	b := NewCaptureSet(IO, ControlCapability)
	u := a.Union(b)
	if len(u.Members()) != 2 {
		t.Errorf("expected deduplicated union of size 2, got %d", len(u.Members()))
	}
}
