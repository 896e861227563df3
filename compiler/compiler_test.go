package compiler

import (
	"testing"

	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/lang"
	"github.com/filterspirit/filterspirit/resolver"
	"github.com/filterspirit/filterspirit/settings"
)

func compileSpiritSrc(t *testing.T, src string) ([]lang.SpiritBlock, *diagnostics.Store) {
	t.Helper()
	res := ast.Parse(src)
	if !res.Complete {
		t.Fatalf("parse did not complete: %+v", res.Diags.All())
	}
	diags := res.Diags
	st := resolver.Resolve(res.Filter.Definitions, diags)
	blocks := CompileSpirit(res.Filter, st, settings.Default(), diags)
	return blocks, diags
}

func TestCompileSpiritNestedConditionsInherit(t *testing.T) {
	src := `
ItemLevel >= 5 {
	Rarity == Unique BaseType "Chaos Orb" {
		Show
	}
	Hide
}
`
	blocks, diags := compileSpiritSrc(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.All())
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}

	show := blocks[0]
	if show.Visibility != lang.Show {
		t.Errorf("block 0 visibility = %v, want Show", show.Visibility)
	}
	if !show.Conditions.ItemLevel.Lower.Set || show.Conditions.ItemLevel.Lower.Value != 5 {
		t.Errorf("block 0 should inherit ItemLevel >= 5: %+v", show.Conditions.ItemLevel)
	}
	if !show.Conditions.RarityCond.IsExact() {
		t.Errorf("block 0 should have an exact Rarity condition: %+v", show.Conditions.RarityCond)
	}
	if len(show.Conditions.BaseType.Strings) != 1 || show.Conditions.BaseType.Strings[0] != "Chaos Orb" {
		t.Errorf("block 0 BaseType = %+v", show.Conditions.BaseType)
	}

	hide := blocks[1]
	if hide.Visibility != lang.Hide {
		t.Errorf("block 1 visibility = %v, want Hide", hide.Visibility)
	}
	if hide.Conditions.RarityCond.Lower.Set {
		t.Errorf("block 1 must not see the Rarity condition set only inside the nested block")
	}
	if !hide.Conditions.ItemLevel.Lower.Set {
		t.Errorf("block 1 should still inherit the outer ItemLevel condition")
	}
}

func TestCompileSpiritSetInlinesCompoundAction(t *testing.T) {
	src := `
$style = { SetTextColor 255 0 0 }

ItemLevel >= 1 {
	Set $style
	Show
}
`
	blocks, diags := compileSpiritSrc(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", diags.All())
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if !blocks[0].Actions.TextColor.Set {
		t.Errorf("expected the inlined Set $style to apply SetTextColor")
	}
	if blocks[0].Actions.TextColor.R != 255 {
		t.Errorf("TextColor = %+v", blocks[0].Actions.TextColor)
	}
}

func TestCompileSpiritStopOnErrorShortCircuitsSiblings(t *testing.T) {
	src := `
ItemLevel >= bogus {
	Show
}
Hide
`
	res := ast.Parse(src)
	diags := res.Diags
	st := resolver.Resolve(res.Filter.Definitions, diags)
	blocks := CompileSpirit(res.Filter, st, settings.Settings{StopOnError: true}, diags)

	if !diags.HasErrors() {
		t.Fatalf("expected an error evaluating ItemLevel >= bogus")
	}
	for _, b := range blocks {
		if b.Visibility == lang.Hide {
			t.Errorf("stop-on-error should have short-circuited before the sibling Hide statement")
		}
	}
}

func TestCompileRealFlatBlocks(t *testing.T) {
	src := `
Show
	ItemLevel >= 5
	SetTextColor 255 0 0
Hide
	Rarity == Unique
`
	res := ast.ParseReal(src)
	if !res.Complete {
		t.Fatalf("real-filter parse did not complete: %+v", res.Diags.All())
	}
	blocks := CompileReal(res.Filter, res.Diags)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Diags.All())
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}
	if blocks[0].Visibility != lang.Show || !blocks[0].Conditions.ItemLevel.Lower.Set {
		t.Errorf("block 0 = %+v", blocks[0])
	}
	if !blocks[0].Actions.TextColor.Set {
		t.Errorf("block 0 action = %+v", blocks[0].Actions.TextColor)
	}
	if blocks[1].Visibility != lang.Hide || !blocks[1].Conditions.RarityCond.IsExact() {
		t.Errorf("block 1 = %+v", blocks[1])
	}
}
