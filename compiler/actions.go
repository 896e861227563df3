package compiler

import (
	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/evaluator"
	"github.com/filterspirit/filterspirit/lang"
	"github.com/filterspirit/filterspirit/sourcemap"
	"github.com/filterspirit/filterspirit/symtab"
)

// applyAction folds one action statement into as, reporting
// action_redefinition when the slot was already set earlier on this
// path and the caller requested that strictness.
func applyAction(stmt ast.Statement, as *lang.ActionSet, st *symtab.Table, diags *diagnostics.Store, strictRedefinition bool) {
	switch stmt.ActionKeyword {
	case "SetTextColor":
		applyColor(&as.TextColor, stmt, st, diags, strictRedefinition)
	case "SetBorderColor":
		applyColor(&as.BorderColor, stmt, st, diags, strictRedefinition)
	case "SetBackgroundColor":
		applyColor(&as.BackgroundColor, stmt, st, diags, strictRedefinition)
	case "SetFontSize":
		applyFontSize(as, stmt, st, diags, strictRedefinition)
	case "SetAlertSound":
		applyBuiltinAlertSound(as, stmt, st, diags, false, strictRedefinition)
	case "PlayAlertSound":
		applyBuiltinAlertSound(as, stmt, st, diags, false, strictRedefinition)
	case "PlayAlertSoundPositional":
		applyBuiltinAlertSound(as, stmt, st, diags, true, strictRedefinition)
	case "CustomAlertSound":
		applyCustomAlertSound(as, stmt, st, diags, false, strictRedefinition)
	case "CustomAlertSoundOptional":
		applyCustomAlertSound(as, stmt, st, diags, true, strictRedefinition)
	case "MinimapIcon":
		applyMinimapIcon(as, stmt, st, diags, strictRedefinition)
	case "PlayEffect":
		applyPlayEffect(as, stmt, st, diags, strictRedefinition)
	case "EnableDropSound":
		applyDropSound(as, stmt, true, false, diags, strictRedefinition)
	case "DisableDropSound":
		applyDropSound(as, stmt, false, false, diags, strictRedefinition)
	case "DisableDropSoundIfAlertSound":
		applyDropSound(as, stmt, false, true, diags, strictRedefinition)
	default:
		origin := stmt.Origin
		diags.Error(diagnostics.InternalCompilerError, &origin, "unhandled action keyword %q", stmt.ActionKeyword)
	}
}

func applyColor(c *lang.Color, stmt ast.Statement, st *symtab.Table, diags *diagnostics.Store, strict bool) {
	seq, ok := evaluator.EvaluateArity(stmt.ActionArgs, st, diags, 3, 4)
	if !ok {
		return
	}
	if strict && c.Set {
		reportActionRedefinition(stmt, c.Origin, diags)
		return
	}
	ints := make([]int, 0, 4)
	for _, v := range seq.Values {
		obj, ok := evaluator.GetAs(v, lang.KindInteger, diags)
		if !ok {
			return
		}
		ints = append(ints, int(obj.Int))
	}
	nc := lang.Color{Set: true, R: ints[0], G: ints[1], B: ints[2], Origin: stmt.Origin}
	if len(ints) == 4 {
		a := ints[3]
		nc.A = &a
	}
	*c = nc
}

func applyFontSize(as *lang.ActionSet, stmt ast.Statement, st *symtab.Table, diags *diagnostics.Store, strict bool) {
	seq, ok := evaluator.EvaluateArity(stmt.ActionArgs, st, diags, 1, 1)
	if !ok {
		return
	}
	obj, ok := evaluator.GetAs(seq.Values[0], lang.KindInteger, diags)
	if !ok {
		return
	}
	if strict && as.FontSize != nil {
		reportActionRedefinition(stmt, as.FontSizeOrigin, diags)
		return
	}
	// Font size outside the client's accepted range is a distinct
	// diagnostic from a type mismatch, but still an action the compiler
	// records rather than drops.
	if obj.Int < 18 || obj.Int > 45 {
		origin := stmt.Origin
		diags.Warning(diagnostics.FontSizeOutsideRange, &origin, "font size %d outside the client's accepted range [18,45]", obj.Int)
	}
	size := int(obj.Int)
	as.FontSize = &size
	as.FontSizeOrigin = stmt.Origin
}

// applyBuiltinAlertSound handles SetAlertSound/PlayAlertSound/
// PlayAlertSoundPositional, which all write the same AlertSound slot.
func applyBuiltinAlertSound(as *lang.ActionSet, stmt ast.Statement, st *symtab.Table, diags *diagnostics.Store, positional bool, strict bool) {
	seq, ok := evaluator.EvaluateArity(stmt.ActionArgs, st, diags, 1, 2)
	if !ok {
		return
	}
	if strict && as.Alert.Set {
		reportActionRedefinition(stmt, as.Alert.Origin, diags)
		return
	}
	slot := lang.AlertSound{Set: true, IsBuiltin: true, Positional: positional, Origin: stmt.Origin}
	first := seq.Values[0]
	if first.Kind == lang.KindShaperVoiceLine {
		slot.HasVoiceLine = true
		slot.VoiceLine = first.VoiceLine
	} else if id, ok2 := evaluator.GetAs(first, lang.KindInteger, diags); ok2 {
		slot.SoundID = int(id.Int)
	} else {
		origin := stmt.Origin
		diags.Error(diagnostics.InvalidSetAlertSound, &origin, "first argument must be a sound id or a shaper voice line keyword")
		return
	}
	if len(seq.Values) == 2 {
		vol, ok := evaluator.GetAs(seq.Values[1], lang.KindInteger, diags)
		if !ok {
			return
		}
		v := int(vol.Int)
		slot.Volume = &v
	}
	as.Alert = slot
}

func applyCustomAlertSound(as *lang.ActionSet, stmt ast.Statement, st *symtab.Table, diags *diagnostics.Store, optional bool, strict bool) {
	seq, ok := evaluator.EvaluateArity(stmt.ActionArgs, st, diags, 1, 1)
	if !ok {
		return
	}
	obj, ok := evaluator.GetAs(seq.Values[0], lang.KindString, diags)
	if !ok {
		return
	}
	if strict && as.Alert.Set {
		reportActionRedefinition(stmt, as.Alert.Origin, diags)
		return
	}
	as.Alert = lang.AlertSound{Set: true, IsCustom: true, Custom: obj.Str, Optional: optional, Origin: stmt.Origin}
}

func applyMinimapIcon(as *lang.ActionSet, stmt ast.Statement, st *symtab.Table, diags *diagnostics.Store, strict bool) {
	seq, ok := evaluator.EvaluateArity(stmt.ActionArgs, st, diags, 3, 3)
	if !ok {
		return
	}
	if strict && as.Minimap.Set {
		reportActionRedefinition(stmt, as.Minimap.Origin, diags)
		return
	}
	size, ok := evaluator.GetAs(seq.Values[0], lang.KindInteger, diags)
	if !ok {
		return
	}
	suit, ok := evaluator.GetAs(seq.Values[1], lang.KindSuit, diags)
	if !ok {
		return
	}
	shape, ok := evaluator.GetAs(seq.Values[2], lang.KindShape, diags)
	if !ok {
		return
	}
	as.Minimap = lang.MinimapIcon{Set: true, Size: int(size.Int), Suit: suit.Suit, Shape: shape.Shape, Origin: stmt.Origin}
}

func applyPlayEffect(as *lang.ActionSet, stmt ast.Statement, st *symtab.Table, diags *diagnostics.Store, strict bool) {
	seq, ok := evaluator.EvaluateArity(stmt.ActionArgs, st, diags, 1, 2)
	if !ok {
		return
	}
	if strict && as.Effect.Set {
		reportActionRedefinition(stmt, as.Effect.Origin, diags)
		return
	}
	suit, ok := evaluator.GetAs(seq.Values[0], lang.KindSuit, diags)
	if !ok {
		return
	}
	isTemp := false
	if len(seq.Values) == 2 {
		tmp, ok := evaluator.GetAs(seq.Values[1], lang.KindTemp, diags)
		if !ok {
			return
		}
		isTemp = tmp.Kind == lang.KindTemp
	}
	as.Effect = lang.PlayEffect{Set: true, Suit: suit.Suit, IsTemp: isTemp, Origin: stmt.Origin}
}

func applyDropSound(as *lang.ActionSet, stmt ast.Statement, enabled, ifNoCustom bool, diags *diagnostics.Store, strict bool) {
	if strict && as.DropSoundCfg.Set {
		reportActionRedefinition(stmt, as.DropSoundCfg.Origin, diags)
		return
	}
	as.DropSoundCfg = lang.DropSound{Set: true, Enabled: enabled, IfNoCustom: ifNoCustom, Origin: stmt.Origin}
}

func reportActionRedefinition(stmt ast.Statement, prevOrigin sourcemap.Range, diags *diagnostics.Store) {
	origin := stmt.Origin
	diags.ErrorWithNote(diagnostics.ActionRedefinition, &origin,
		"action \""+stmt.ActionKeyword+"\" already set on this path", &prevOrigin, "previously set here")
}
