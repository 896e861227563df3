package symtab

import (
	"testing"

	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/lang"
	"github.com/filterspirit/filterspirit/sourcemap"
)

func TestDefineAndLookupObject(t *testing.T) {
	tab := New()
	if tab.Exists("red") {
		t.Fatalf("fresh table should not contain 'red'")
	}
	tab.DefineObject("red", ObjectEntry{Value: lang.Sequence{Values: []lang.Object{{Kind: lang.KindInteger, Int: 1}}}})
	if !tab.Exists("red") {
		t.Fatalf("expected 'red' to exist after DefineObject")
	}
	e, ok := tab.LookupObject("red")
	if !ok || e.Value.Values[0].Int != 1 {
		t.Errorf("LookupObject = %+v, %v", e, ok)
	}
	if _, ok := tab.LookupSubtree("red"); ok {
		t.Errorf("'red' was bound as an object, should not resolve as a subtree")
	}
}

func TestDefineAndLookupSubtree(t *testing.T) {
	tab := New()
	tab.DefineSubtree("style", SubtreeEntry{Statements: []ast.Statement{{Kind: ast.StmtVisibility, Visibility: "Show"}}})
	if !tab.Exists("style") {
		t.Fatalf("expected 'style' to exist after DefineSubtree")
	}
	e, ok := tab.LookupSubtree("style")
	if !ok || len(e.Statements) != 1 {
		t.Errorf("LookupSubtree = %+v, %v", e, ok)
	}
}

func TestFirstOriginAcrossBothMaps(t *testing.T) {
	tab := New()
	tab.DefineObject("a", ObjectEntry{NameOrigin: sourcemap.Range{Start: 1}})
	tab.DefineSubtree("b", SubtreeEntry{NameOrigin: sourcemap.Range{Start: 2}})

	if origin, ok := tab.FirstOrigin("a"); !ok || origin.Start != 1 {
		t.Errorf("FirstOrigin(a) = %+v, %v", origin, ok)
	}
	if origin, ok := tab.FirstOrigin("b"); !ok || origin.Start != 2 {
		t.Errorf("FirstOrigin(b) = %+v, %v", origin, ok)
	}
	if _, ok := tab.FirstOrigin("missing"); ok {
		t.Errorf("FirstOrigin should report not-found for an unbound name")
	}
}
