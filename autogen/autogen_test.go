package autogen

import (
	"sort"
	"testing"

	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/lang"
)

func TestExpandPassthroughWithoutAutogen(t *testing.T) {
	sb := lang.SpiritBlock{Block: lang.Block{Visibility: lang.Show}}
	diags := diagnostics.NewStore()
	block, ok := Expand(sb, Empty(), diags)
	if !ok || diags.HasErrors() {
		t.Fatalf("Expand should pass a non-autogen block through unchanged: %+v", diags.All())
	}
	if block.Visibility != lang.Show {
		t.Errorf("block = %+v", block)
	}
}

func TestExpandCurrencySynthesizesBaseTypeAndClass(t *testing.T) {
	snap := Snapshot{
		Currency: []Elem{
			{Name: "Chaos Orb", Price: Price{ChaosValue: 1}},
			{Name: "Exalted Orb", Price: Price{ChaosValue: 150}},
			{Name: "Scroll of Wisdom", Price: Price{ChaosValue: 0.01}},
		},
	}
	sb := lang.SpiritBlock{
		Block: lang.Block{Visibility: lang.Show},
		Autogen: lang.AutogenExtension{
			Set: true, CategorySet: true, Category: lang.CatCurrency,
			PriceRange: lang.RangeCondition{Lower: lang.Bound{Set: true, Value: 1, Inclusive: true}},
		},
	}
	diags := diagnostics.NewStore()
	block, ok := Expand(sb, snap, diags)
	if !ok || diags.HasErrors() {
		t.Fatalf("Expand failed: ok=%v diags=%+v", ok, diags.All())
	}
	if !block.Conditions.BaseType.Set || !block.Conditions.BaseType.ExactMatch {
		t.Fatalf("expected an exact-match BaseType condition, got %+v", block.Conditions.BaseType)
	}
	names := append([]string{}, block.Conditions.BaseType.Strings...)
	sort.Strings(names)
	want := []string{"Chaos Orb", "Exalted Orb"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("names = %v, want %v (Scroll of Wisdom is below the price floor)", names, want)
	}
	if block.Conditions.Class.Strings[0] != "Currency" {
		t.Errorf("Class = %+v, want Currency", block.Conditions.Class)
	}
}

func TestExpandDropsLowConfidencePrices(t *testing.T) {
	snap := Snapshot{Currency: []Elem{{Name: "Mirror Shard", Price: Price{ChaosValue: 9999, LowConfidence: true}}}}
	sb := lang.SpiritBlock{
		Block:   lang.Block{Visibility: lang.Show},
		Autogen: lang.AutogenExtension{Set: true, CategorySet: true, Category: lang.CatCurrency},
	}
	diags := diagnostics.NewStore()
	_, ok := Expand(sb, snap, diags)
	if ok {
		t.Fatalf("expected Expand to drop the block: every candidate is low-confidence")
	}
}

func TestExpandGemsRequiresPrerequisiteConditions(t *testing.T) {
	sb := lang.SpiritBlock{
		Block:   lang.Block{Visibility: lang.Show},
		Autogen: lang.AutogenExtension{Set: true, CategorySet: true, Category: lang.CatGems},
	}
	diags := diagnostics.NewStore()
	_, ok := Expand(sb, Snapshot{}, diags)
	if ok {
		t.Fatalf("expected Expand to reject a gems autogen block missing GemLevel/Quality/Corrupted")
	}
	found := false
	for _, d := range diags.All() {
		if d.ID == diagnostics.AutogenError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an autogen_error diagnostic, got %+v", diags.All())
	}
}

func TestExpandBasesDefaultsCorruptedMirroredAndRarity(t *testing.T) {
	snap := Snapshot{Bases: []Base{
		{Elem: Elem{Name: "Hubris Circlet", Price: Price{ChaosValue: 5}}, ItemLevel: 86, Influence: Influence{Shaper: true}},
	}}
	sb := lang.SpiritBlock{
		Block: lang.Block{Visibility: lang.Show},
		Conditions: lang.ConditionSet{
			ItemLevel:    lang.RangeCondition{Lower: lang.Bound{Set: true, Value: 84, Inclusive: true}},
			HasInfluence: lang.InfluenceCondition{Set: true, ExactMatch: true, Flags: lang.InfluenceShaper},
		},
		Autogen: lang.AutogenExtension{Set: true, CategorySet: true, Category: lang.CatBases},
	}
	diags := diagnostics.NewStore()
	block, ok := Expand(sb, snap, diags)
	if !ok || diags.HasErrors() {
		t.Fatalf("Expand failed: ok=%v diags=%+v", ok, diags.All())
	}
	if block.Conditions.Corrupted.Value != false || !block.Conditions.Corrupted.Set {
		t.Errorf("expected Corrupted=false to be defaulted, got %+v", block.Conditions.Corrupted)
	}
	if block.Conditions.Mirrored.Value != false || !block.Conditions.Mirrored.Set {
		t.Errorf("expected Mirrored=false to be defaulted, got %+v", block.Conditions.Mirrored)
	}
	if block.Conditions.RarityCond.Lower.Rarity != lang.RarityNormal || block.Conditions.RarityCond.Upper.Rarity != lang.RarityRare {
		t.Errorf("expected a default Normal..Rare rarity range, got %+v", block.Conditions.RarityCond)
	}
}

func TestExpandAmbiguousUniqueGroupsByBaseType(t *testing.T) {
	snap := Snapshot{UniqueJewels: UniqueCategory{
		Ambiguous: map[string][]Elem{
			"Viridian Jewel": {
				{Name: "Lethal Pride", Price: Price{ChaosValue: 20}},
				{Name: "Brutal Restraint", Price: Price{ChaosValue: 30}},
			},
		},
	}}
	sb := lang.SpiritBlock{
		Block:   lang.Block{Visibility: lang.Show},
		Autogen: lang.AutogenExtension{Set: true, CategorySet: true, Category: lang.CatUniqueJewelsAmbiguous},
	}
	diags := diagnostics.NewStore()
	block, ok := Expand(sb, snap, diags)
	if !ok || diags.HasErrors() {
		t.Fatalf("Expand failed: ok=%v diags=%+v", ok, diags.All())
	}
	if len(block.Conditions.BaseType.Strings) != 1 || block.Conditions.BaseType.Strings[0] != "Viridian Jewel" {
		t.Errorf("expected a single base type entry, got %+v", block.Conditions.BaseType.Strings)
	}
	if !block.Conditions.RarityCond.IsExact() || block.Conditions.RarityCond.Lower.Rarity != lang.RarityUnique {
		t.Errorf("expected an exact Unique rarity condition, got %+v", block.Conditions.RarityCond)
	}
}

func TestDedupeNamesRemovesDuplicates(t *testing.T) {
	out := DedupeNames([]string{"a", "b", "a", "c", "b"})
	if len(out) != 3 {
		t.Fatalf("got %d names, want 3: %v", len(out), out)
	}
	seen := map[string]bool{}
	for _, n := range out {
		if seen[n] {
			t.Fatalf("duplicate name %q in deduped output %v", n, out)
		}
		seen[n] = true
	}
}
