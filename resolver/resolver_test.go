package resolver

import (
	"testing"

	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/diagnostics"
)

func TestResolveBindsObjectsAndSubtrees(t *testing.T) {
	diags := diagnostics.NewStore()
	defs := []ast.Definition{
		{
			Name: "red",
			Value: ast.ValueExpression{Sequence: &ast.Sequence{Values: []ast.PrimitiveValue{
				{IsLiteral: true, Literal: ast.Literal{Kind: ast.LitInt, Int: 1}},
			}}},
		},
		{
			Name: "style",
			Value: ast.ValueExpression{Compound: &ast.CompoundActionExpr{
				Statements: []ast.Statement{{Kind: ast.StmtVisibility, Visibility: "Show"}},
			}},
		},
	}

	st := Resolve(defs, diags)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.All())
	}
	if !st.Exists("red") || !st.Exists("style") {
		t.Fatalf("expected both 'red' and 'style' to be bound")
	}
	if _, ok := st.LookupObject("red"); !ok {
		t.Errorf("'red' should resolve as an object")
	}
	if _, ok := st.LookupSubtree("style"); !ok {
		t.Errorf("'style' should resolve as a subtree")
	}
}

func TestResolveRejectsDuplicateNamesKeepingFirst(t *testing.T) {
	diags := diagnostics.NewStore()
	first := ast.Definition{
		Name: "x",
		Value: ast.ValueExpression{Sequence: &ast.Sequence{Values: []ast.PrimitiveValue{
			{IsLiteral: true, Literal: ast.Literal{Kind: ast.LitInt, Int: 1}},
		}}},
	}
	second := ast.Definition{
		Name: "x",
		Value: ast.ValueExpression{Sequence: &ast.Sequence{Values: []ast.PrimitiveValue{
			{IsLiteral: true, Literal: ast.Literal{Kind: ast.LitInt, Int: 2}},
		}}},
	}
	st := Resolve([]ast.Definition{first, second}, diags)

	if !diags.HasErrors() {
		t.Fatalf("expected a name_already_exists error for the duplicate definition")
	}
	found := false
	for _, d := range diags.All() {
		if d.ID == diagnostics.NameAlreadyExists {
			found = true
			if len(d.Related) != 1 {
				t.Errorf("expected one related note pointing at the first definition, got %+v", d.Related)
			}
		}
	}
	if !found {
		t.Errorf("expected a name_already_exists diagnostic, got %+v", diags.All())
	}

	entry, ok := st.LookupObject("x")
	if !ok || entry.Value.Values[0].Int != 1 {
		t.Errorf("expected the first binding to win, got %+v", entry)
	}
}

func TestResolveEmptyDefinitionsReturnsEmptyTable(t *testing.T) {
	diags := diagnostics.NewStore()
	st := Resolve(nil, diags)
	if diags.HasErrors() {
		t.Errorf("resolving no definitions should not produce diagnostics")
	}
	if st.Exists("anything") {
		t.Errorf("expected an empty table")
	}
}
