package names

import "testing"

func TestNewAndString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"foo", "foo"},
		{"a.b", "a·b"},
		{"a.b.c", "a·b·c"},
	}
	for _, c := range cases {
		got := New(c.in).String()
		if got != c.want {
			t.Errorf("New(%q).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLocalAndQualified(t *testing.T) {
	n := New("a.b.c")
	if n.Local() != "c" {
		t.Errorf("Local() = %q, want c", n.Local())
	}
	if !n.Qualified() {
		t.Errorf("expected qualified name")
	}
	if New("foo").Qualified() {
		t.Errorf("single word should not be qualified")
	}
	if New("").Local() != "" {
		t.Errorf("Blk.Local() should be empty")
	}
}

func TestNest(t *testing.T) {
	parent := New("mod")
	child := Word{Value: "f"}
	got := Nest(parent, child)
	if got.String() != "mod·f" {
		t.Errorf("Nest = %q, want mod·f", got.String())
	}
	blkNest := Nest(Blk{}, child)
	if blkNest.String() != "f" {
		t.Errorf("Nest(Blk, f) = %q, want f", blkNest.String())
	}
}

func TestEqual(t *testing.T) {
	a := New("a.b")
	b := New("a.b")
	c := New("a.c")
	if !Equal(a, b) {
		t.Errorf("expected a.b == a.b structurally")
	}
	if Equal(a, c) {
		t.Errorf("expected a.b != a.c")
	}
	// Two distinct Go values, same structure => equal (not identity).
	if !Equal(Word{Value: "x"}, Word{Value: "x"}) {
		t.Errorf("expected structural equality for Word")
	}
}
