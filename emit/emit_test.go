package emit

import (
	"strings"
	"testing"

	"github.com/filterspirit/filterspirit/lang"
)

func TestEmitSimpleBlock(t *testing.T) {
	blocks := []lang.Block{
		{
			Visibility: lang.Show,
			Conditions: lang.ConditionSet{
				ItemLevel: lang.RangeCondition{Lower: lang.Bound{Set: true, Value: 5, Inclusive: true}},
			},
			Actions: lang.ActionSet{
				TextColor: lang.Color{Set: true, R: 255, G: 0, B: 0},
			},
		},
	}
	out := Emit(blocks, Default())
	want := "Show\n\tItemLevel >= 5\n\tSetTextColor 255 0 0\n"
	if out != want {
		t.Errorf("Emit = %q, want %q", out, want)
	}
}

func TestEmitExactRangeUsesEquals(t *testing.T) {
	cs := lang.ConditionSet{ItemLevel: lang.RangeCondition{
		Lower: lang.Bound{Set: true, Value: 10, Inclusive: true},
		Upper: lang.Bound{Set: true, Value: 10, Inclusive: true},
	}}
	out := Emit([]lang.Block{{Visibility: lang.Hide, Conditions: cs}}, Default())
	if !strings.Contains(out, "ItemLevel = 10") {
		t.Errorf("expected an exact-range line, got %q", out)
	}
}

func TestEmitSocketSpecAlwaysPrintsOperator(t *testing.T) {
	cs := lang.ConditionSet{Sockets: lang.SocketSpecCondition{
		Set: true, Comparison: lang.OpEqual,
		Values: []lang.SocketSpec{{R: 2, G: 1}},
	}}
	out := Emit([]lang.Block{{Visibility: lang.Show, Conditions: cs}}, Default())
	if !strings.Contains(out, "Sockets = RRG") {
		t.Errorf("expected the operator to always print for sockets, got %q", out)
	}
}

func TestEmitSocketSpecWithCount(t *testing.T) {
	count := 5
	cs := lang.ConditionSet{SocketGroup: lang.SocketSpecCondition{
		Set: true, Comparison: lang.OpLess,
		Values: []lang.SocketSpec{{Count: &count, R: 2}},
	}}
	out := Emit([]lang.Block{{Visibility: lang.Show, Conditions: cs}}, Default())
	if !strings.Contains(out, "SocketGroup < 5RR") {
		t.Errorf("expected count prefix then letters, got %q", out)
	}
}

func TestEmitStringListExactMatchAndQuoting(t *testing.T) {
	cs := lang.ConditionSet{BaseType: lang.StringListCondition{
		Set: true, ExactMatch: true, Strings: []string{"Chaos Orb", "Exalted Orb"},
	}}
	out := Emit([]lang.Block{{Visibility: lang.Show, Conditions: cs}}, Default())
	want := `BaseType == "Chaos Orb" "Exalted Orb"`
	if !strings.Contains(out, want) {
		t.Errorf("Emit = %q, want to contain %q", out, want)
	}
}

func TestEmitRangedStringListPutsCountAfterKeyword(t *testing.T) {
	cs := lang.ConditionSet{HasExplicitMod: lang.RangedStringListCondition{
		Strings: lang.StringListCondition{Set: true, Strings: []string{"of Haast"}},
		Count:   lang.RangeCondition{Lower: lang.Bound{Set: true, Value: 3, Inclusive: true}},
	}}
	out := Emit([]lang.Block{{Visibility: lang.Show, Conditions: cs}}, Default())
	want := `HasExplicitMod >=3 "of Haast"`
	if !strings.Contains(out, want) {
		t.Errorf("Emit = %q, want to contain %q", out, want)
	}
}

func TestEmitInfluenceNoneWhenZero(t *testing.T) {
	cs := lang.ConditionSet{HasInfluence: lang.InfluenceCondition{Set: true}}
	out := Emit([]lang.Block{{Visibility: lang.Show, Conditions: cs}}, Default())
	if !strings.Contains(out, "HasInfluence None") {
		t.Errorf("Emit = %q, want HasInfluence None", out)
	}
}

func TestEmitInfluenceExactMatchMultipleFlags(t *testing.T) {
	cs := lang.ConditionSet{HasInfluence: lang.InfluenceCondition{
		Set: true, ExactMatch: true, Flags: lang.InfluenceShaper | lang.InfluenceElder,
	}}
	out := Emit([]lang.Block{{Visibility: lang.Show, Conditions: cs}}, Default())
	if !strings.Contains(out, `HasInfluence == Shaper Elder`) {
		t.Errorf("Emit = %q, want an exact-match influence line", out)
	}
}

func TestEmitMultipleBlocksSeparatedByBlankLine(t *testing.T) {
	blocks := []lang.Block{
		{Visibility: lang.Show},
		{Visibility: lang.Hide},
	}
	out := Emit(blocks, Default())
	if !strings.Contains(out, "Show\n\nHide\n") {
		t.Errorf("Emit = %q, want a blank line between blocks", out)
	}
}

func TestEmitLineTemplateOverride(t *testing.T) {
	cfg := Default()
	cfg.LineTemplates = map[string]string{"ItemLevel": "{{keyword}}: {{op}}{{value}}"}
	cs := lang.ConditionSet{ItemLevel: lang.RangeCondition{Lower: lang.Bound{Set: true, Value: 5, Inclusive: true}}}
	out := Emit([]lang.Block{{Visibility: lang.Show, Conditions: cs}}, cfg)
	if !strings.Contains(out, "ItemLevel: >=5") {
		t.Errorf("Emit = %q, want the overridden template rendered", out)
	}
}

func TestEmitEnumLabelOverride(t *testing.T) {
	cfg := Default()
	cfg.EnumLabels = map[string]string{"Rarity.Unique": "UNIQUE_ITEM"}
	cs := lang.ConditionSet{RarityCond: lang.RangeCondition{
		Lower: lang.Bound{Set: true, Rarity: lang.RarityUnique, IsRarity: true, Inclusive: true},
		Upper: lang.Bound{Set: true, Rarity: lang.RarityUnique, IsRarity: true, Inclusive: true},
	}}
	out := Emit([]lang.Block{{Visibility: lang.Show, Conditions: cs}}, cfg)
	if !strings.Contains(out, "Rarity = UNIQUE_ITEM") {
		t.Errorf("Emit = %q, want the relabeled rarity", out)
	}
}

func TestEmitEmptyBlockList(t *testing.T) {
	if out := Emit(nil, Default()); out != "" {
		t.Errorf("Emit(nil) = %q, want empty string", out)
	}
}
