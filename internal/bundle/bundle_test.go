package bundle

import (
	"testing"

	"github.com/effect-lang/effc/internal/backend"
	"github.com/effect-lang/effc/internal/core"
	"github.com/effect-lang/effc/internal/names"
)

func TestSerializeDeserializeRoundtrip(t *testing.T) {
	prog := &backend.Program{
		Definitions: []core.Definition{
			&core.DataDef{Name: names.New("Option"), Constructors: []core.DataConstructor{
				{Name: names.New("None")},
				{Name: names.New("Some"), Fields: []string{"value"}},
			}},
		},
		Entry: &core.Return{Value: &core.Literal{Value: int64(42)}},
	}

	b := New("tree-walk", prog)
	b.AddModule("./util", &backend.Program{
		Definitions: []core.Definition{&core.RecordDef{Name: names.New("Pair"), Fields: []string{"a", "b"}}},
		Entry:       &core.Return{Value: &core.Literal{Value: int64(0)}},
	})

	data, err := b.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if restored.Backend != "tree-walk" {
		t.Fatalf("Backend = %q", restored.Backend)
	}
	if len(restored.Main.Definitions) != 1 {
		t.Fatalf("Main.Definitions = %d", len(restored.Main.Definitions))
	}
	dd, ok := restored.Main.Definitions[0].(*core.DataDef)
	if !ok || dd.Name.Local() != "Option" || len(dd.Constructors) != 2 {
		t.Fatalf("unexpected DataDef: %+v", restored.Main.Definitions[0])
	}
	ret, ok := restored.Main.Entry.(*core.Return)
	if !ok {
		t.Fatalf("Entry type = %T", restored.Main.Entry)
	}
	lit, ok := ret.Value.(*core.Literal)
	if !ok || lit.Value.(int64) != 42 {
		t.Fatalf("unexpected Entry value: %+v", ret.Value)
	}
	if len(restored.Modules) != 1 || restored.Modules["./util"] == nil {
		t.Fatalf("Modules = %+v", restored.Modules)
	}
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	if _, err := Deserialize([]byte("not a bundle at all")); err == nil {
		t.Fatal("expected an error for a non-bundle payload")
	}
}

func TestDeserializeRejectsUnsupportedVersion(t *testing.T) {
	data, err := New("tree-walk", &backend.Program{Entry: &core.Return{Value: &core.Literal{Value: int64(1)}}}).Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	data[4] = 0x7f
	if _, err := Deserialize(data); err == nil {
		t.Fatal("expected an error for an unsupported version byte")
	}
}
