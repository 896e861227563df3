package ast

import "testing"

func TestParseDefinitions(t *testing.T) {
	src := `
$red = RR
$style = { SetTextColor 255 0 0 }
Show
`
	res := Parse(src)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Diags.All())
	}
	if !res.Complete {
		t.Fatalf("expected a complete parse")
	}
	if len(res.Filter.Definitions) != 2 {
		t.Fatalf("got %d definitions, want 2", len(res.Filter.Definitions))
	}

	red := res.Filter.Definitions[0]
	if red.Name != "red" {
		t.Errorf("definition 0 name = %q, want red", red.Name)
	}
	if red.Value.Sequence == nil || len(red.Value.Sequence.Values) != 1 {
		t.Fatalf("red value = %+v, want a 1-value sequence", red.Value)
	}
	if lit := red.Value.Sequence.Values[0].Literal; lit.Kind != LitSocketSpec || lit.Socket.Letters != "RR" {
		t.Errorf("red literal = %+v, want socket spec RR", lit)
	}

	style := res.Filter.Definitions[1]
	if style.Value.Compound == nil {
		t.Fatalf("style value = %+v, want a compound action", style.Value)
	}
	if len(style.Value.Compound.Statements) != 1 {
		t.Fatalf("style compound has %d statements, want 1", len(style.Value.Compound.Statements))
	}
	action := style.Value.Compound.Statements[0]
	if action.Kind != StmtAction || action.ActionKeyword != "SetTextColor" {
		t.Errorf("style action = %+v", action)
	}
	if len(action.ActionArgs.Values) != 3 {
		t.Errorf("SetTextColor args = %+v, want 3 values", action.ActionArgs.Values)
	}

	if len(res.Filter.Statements) != 1 || res.Filter.Statements[0].Kind != StmtVisibility {
		t.Fatalf("top-level statements = %+v, want a single Show", res.Filter.Statements)
	}
}

func TestParseRuleBlockWithAndAndSet(t *testing.T) {
	src := `
$style = { SetTextColor 255 0 0 }

ItemLevel >= 5 && Rarity == Unique {
	SetFontSize 40
	Set $style
	Show
}
`
	res := Parse(src)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Diags.All())
	}
	if len(res.Filter.Statements) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(res.Filter.Statements))
	}
	block := res.Filter.Statements[0]
	if block.Kind != StmtRuleBlock {
		t.Fatalf("statement kind = %v, want StmtRuleBlock", block.Kind)
	}
	if len(block.Conditions) != 2 {
		t.Fatalf("got %d conditions, want 2: %+v", len(block.Conditions), block.Conditions)
	}
	if block.Conditions[0].Keyword != "ItemLevel" || !block.Conditions[0].HasOp || block.Conditions[0].Op != ">=" {
		t.Errorf("condition 0 = %+v", block.Conditions[0])
	}
	if block.Conditions[1].Keyword != "Rarity" || block.Conditions[1].Op != "==" {
		t.Errorf("condition 1 = %+v", block.Conditions[1])
	}

	if len(block.Body) != 3 {
		t.Fatalf("got %d body statements, want 3: %+v", len(block.Body), block.Body)
	}
	if block.Body[0].Kind != StmtAction || block.Body[0].ActionKeyword != "SetFontSize" {
		t.Errorf("body 0 = %+v", block.Body[0])
	}
	if block.Body[1].Kind != StmtSetAction || block.Body[1].SetName != "style" {
		t.Errorf("body 1 = %+v", block.Body[1])
	}
	if block.Body[2].Kind != StmtVisibility || block.Body[2].Visibility != "Show" {
		t.Errorf("body 2 = %+v", block.Body[2])
	}
}

func TestParseAutogenWithNestedPrice(t *testing.T) {
	src := `
Autogen currency {
	Price >= 10 {
		Show
	}
}
`
	res := Parse(src)
	if res.Diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Diags.All())
	}
	if len(res.Filter.Statements) != 1 {
		t.Fatalf("got %d top-level statements, want 1", len(res.Filter.Statements))
	}
	outer := res.Filter.Statements[0]
	if outer.Kind != StmtRuleBlock {
		t.Fatalf("outer kind = %v, want StmtRuleBlock", outer.Kind)
	}
	if len(outer.Conditions) != 1 || outer.Conditions[0].Keyword != "Autogen" {
		t.Fatalf("outer conditions = %+v", outer.Conditions)
	}
	if outer.Conditions[0].Args.Values[0].Literal.Str != "currency" {
		t.Errorf("autogen category = %+v", outer.Conditions[0].Args.Values[0])
	}
	if len(outer.Body) != 1 {
		t.Fatalf("got %d nested statements, want 1", len(outer.Body))
	}
	inner := outer.Body[0]
	if inner.Kind != StmtRuleBlock || len(inner.Conditions) != 1 || inner.Conditions[0].Keyword != "Price" {
		t.Fatalf("inner = %+v", inner)
	}
	if !inner.Conditions[0].HasOp || inner.Conditions[0].Op != ">=" {
		t.Errorf("price condition = %+v", inner.Conditions[0])
	}
	if len(inner.Body) != 1 || inner.Body[0].Kind != StmtVisibility {
		t.Fatalf("inner body = %+v", inner.Body)
	}
}

func TestParseErrorOnMissingValue(t *testing.T) {
	res := Parse(`$x = `)
	if !res.Diags.HasErrors() {
		t.Fatalf("expected a parse error for a missing definition value")
	}
}

func TestParseSequenceNeverEmpty(t *testing.T) {
	res := Parse(`ItemLevel >= { Show }`)
	if !res.Diags.HasErrors() {
		t.Fatalf("expected a parse error: a sequence cannot be empty")
	}
}
