package lsp

import (
	"strings"
	"testing"
)

const addSource = `def add(x: Int, y: Int): Int = {
  val z = x
  z
}
`

func TestServiceHoverAndDefinitionForLocalBinding(t *testing.T) {
	svc := NewService()
	uri := "file:///test.effc"
	svc.Open(uri, addSource)

	// "z" usage on line 3 (1-based), column 3 (1-based) -> LSP (2, 2).
	refPos := Position{Line: 2, Character: 2}

	hover, ok := svc.GetHover(uri, refPos)
	if !ok {
		t.Fatalf("GetHover: no result at %+v", refPos)
	}
	if !strings.Contains(hover, "z") {
		t.Errorf("hover text %q does not mention z", hover)
	}

	loc, ok := svc.GetDefinition(uri, refPos)
	if !ok {
		t.Fatalf("GetDefinition: no result at %+v", refPos)
	}
	if loc.URI != uri {
		t.Errorf("definition URI = %q, want %q", loc.URI, uri)
	}
	if loc.Range.Start.Line != 1 {
		t.Errorf("definition line = %d, want 1 (the val z declaration)", loc.Range.Start.Line)
	}
}

func TestServiceGetSymbolAt(t *testing.T) {
	svc := NewService()
	uri := "file:///test.effc"
	svc.Open(uri, addSource)

	info, ok := svc.GetSymbolAt(uri, Position{Line: 2, Character: 2})
	if !ok {
		t.Fatalf("GetSymbolAt: no result")
	}
	if info.Name != "z" {
		t.Errorf("symbol name = %q, want z", info.Name)
	}
	if info.Kind != "value" {
		t.Errorf("symbol kind = %q, want value", info.Kind)
	}
}

func TestServiceGetSymbolsIncludesTopLevelFunction(t *testing.T) {
	svc := NewService()
	uri := "file:///test.effc"
	svc.Open(uri, addSource)

	symbols := svc.GetSymbols(uri)
	var names []string
	for _, s := range symbols {
		names = append(names, s.Name)
	}
	found := false
	for _, n := range names {
		if n == "add" {
			found = true
		}
	}
	if !found {
		t.Errorf("GetSymbols = %v, expected to find top-level function %q", names, "add")
	}
}

func TestServiceGetReferences(t *testing.T) {
	svc := NewService()
	uri := "file:///test.effc"
	svc.Open(uri, addSource)

	refs := svc.GetReferences(uri, Position{Line: 2, Character: 2})
	if len(refs) != 1 {
		t.Fatalf("GetReferences = %d entries, want 1", len(refs))
	}
	if refs[0].Range.Start.Line != 2 {
		t.Errorf("reference line = %d, want 2", refs[0].Range.Start.Line)
	}
}

func TestServiceCodeActionsAndExecuteCommand(t *testing.T) {
	svc := NewService()
	uri := "file:///test.effc"
	svc.Open(uri, addSource)

	pos := Position{Line: 2, Character: 2}
	actions := svc.GetCodeActions(uri, Range{Start: pos, End: pos})
	if len(actions) != 1 {
		t.Fatalf("GetCodeActions = %d actions, want 1", len(actions))
	}
	action := actions[0]
	if action.Command != "effc.describeSymbol" {
		t.Fatalf("unexpected command %q", action.Command)
	}

	result, err := svc.ExecuteCommand(action.Command, action.Args)
	if err != nil {
		t.Fatalf("ExecuteCommand: %v", err)
	}
	text, ok := result.(string)
	if !ok || !strings.Contains(text, "z") {
		t.Errorf("ExecuteCommand result = %v, want hover text mentioning z", result)
	}
}

func TestServiceUnopenedDocumentReturnsNoResult(t *testing.T) {
	svc := NewService()
	uri := "file:///missing.effc"

	if _, ok := svc.GetHover(uri, Position{}); ok {
		t.Errorf("GetHover on unopened document should fail")
	}
	if _, ok := svc.GetDefinition(uri, Position{}); ok {
		t.Errorf("GetDefinition on unopened document should fail")
	}
	if got := svc.GetSymbols(uri); got != nil {
		t.Errorf("GetSymbols on unopened document = %v, want nil", got)
	}
	if got := svc.GetReferences(uri, Position{}); got != nil {
		t.Errorf("GetReferences on unopened document = %v, want nil", got)
	}
}

func TestServiceCloseDiscardsDocument(t *testing.T) {
	svc := NewService()
	uri := "file:///test.effc"
	svc.Open(uri, addSource)
	svc.Close(uri)

	if _, ok := svc.GetSymbolAt(uri, Position{Line: 2, Character: 2}); ok {
		t.Errorf("GetSymbolAt should fail after Close")
	}
}
