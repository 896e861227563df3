package compiler

import (
	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/evaluator"
	"github.com/filterspirit/filterspirit/lang"
	"github.com/filterspirit/filterspirit/sourcemap"
	"github.com/filterspirit/filterspirit/symtab"
)

// applyCondition folds one parsed condition clause into cs (or, for
// the DSL's own Autogen/Price pseudo-conditions, into ag), reporting
// a redefinition diagnostic when the same property or bound was
// already set earlier on this path.
func applyCondition(cond ast.Condition, cs *lang.ConditionSet, ag *lang.AutogenExtension, st *symtab.Table, diags *diagnostics.Store) {
	switch cond.Keyword {
	case "Autogen":
		applyAutogenCategory(cond, ag, diags)
	case "Price":
		applyPrice(cond, ag, st, diags)

	case "ItemLevel":
		applyRangeNumeric(&cs.ItemLevel, cond, st, diags)
	case "DropLevel":
		applyRangeNumeric(&cs.DropLevel, cond, st, diags)
	case "Quality":
		applyRangeNumeric(&cs.Quality, cond, st, diags)
	case "Height":
		applyRangeNumeric(&cs.Height, cond, st, diags)
	case "Width":
		applyRangeNumeric(&cs.Width, cond, st, diags)
	case "StackSize":
		applyRangeNumeric(&cs.StackSize, cond, st, diags)
	case "GemLevel":
		applyRangeNumeric(&cs.GemLevel, cond, st, diags)
	case "MapTier":
		applyRangeNumeric(&cs.MapTier, cond, st, diags)
	case "Rarity":
		applyRangeRarity(&cs.RarityCond, cond, st, diags)

	case "Sockets":
		applySocketSpec(&cs.Sockets, cond, st, diags)
	case "SocketGroup":
		applySocketSpec(&cs.SocketGroup, cond, st, diags)

	case "Class":
		applyStringList(&cs.Class, cond, st, diags)
	case "BaseType":
		applyStringList(&cs.BaseType, cond, st, diags)
	case "Prophecy":
		applyStringList(&cs.Prophecy, cond, st, diags)
	case "ArchnemesisMod":
		applyStringList(&cs.ArchnemesisMod, cond, st, diags)

	case "HasExplicitMod":
		applyRangedStringList(&cs.HasExplicitMod, cond, st, diags)
	case "HasEnchantment":
		applyRangedStringList(&cs.HasEnchantment, cond, st, diags)

	case "Identified":
		applyBool(&cs.Identified, cond, st, diags)
	case "Corrupted":
		applyBool(&cs.Corrupted, cond, st, diags)
	case "Mirrored":
		applyBool(&cs.Mirrored, cond, st, diags)
	case "ElderItem":
		applyBool(&cs.ElderItem, cond, st, diags)
	case "ShaperItem":
		applyBool(&cs.ShaperItem, cond, st, diags)
	case "FracturedItem":
		applyBool(&cs.FracturedItem, cond, st, diags)
	case "SynthesisedItem":
		applyBool(&cs.SynthesisedItem, cond, st, diags)
	case "AnyEnchantment":
		applyBool(&cs.AnyEnchantment, cond, st, diags)
	case "ShapedMap":
		applyBool(&cs.ShapedMap, cond, st, diags)

	case "HasInfluence":
		applyInfluence(&cs.HasInfluence, cond, st, diags)

	default:
		origin := cond.Origin
		diags.Error(diagnostics.InternalCompilerError, &origin, "unhandled condition keyword %q", cond.Keyword)
	}
}

func parseOp(s string) (lang.ComparisonOp, bool) {
	switch s {
	case "<":
		return lang.OpLess, true
	case "<=":
		return lang.OpLessEqual, true
	case ">":
		return lang.OpGreater, true
	case ">=":
		return lang.OpGreaterEqual, true
	case "=", "==":
		return lang.OpEqual, true
	case "!=", "!":
		return lang.OpNotEqual, true
	default:
		return 0, false
	}
}

func applyRangeNumeric(r *lang.RangeCondition, cond ast.Condition, st *symtab.Table, diags *diagnostics.Store) {
	seq, ok := evaluator.EvaluateArity(cond.Args, st, diags, 1, 1)
	if !ok {
		return
	}
	obj, ok := evaluator.GetAs(seq.Values[0], lang.KindFractional, diags)
	if !ok {
		return
	}
	mergeRangeBound(r, cond, lang.Bound{Value: obj.Frac}, diags)
}

func applyRangeRarity(r *lang.RangeCondition, cond ast.Condition, st *symtab.Table, diags *diagnostics.Store) {
	seq, ok := evaluator.EvaluateArity(cond.Args, st, diags, 1, 1)
	if !ok {
		return
	}
	obj, ok := evaluator.GetAs(seq.Values[0], lang.KindRarity, diags)
	if !ok {
		return
	}
	mergeRangeBound(r, cond, lang.Bound{Rarity: obj.Rarity, IsRarity: true}, diags)
}

// mergeRangeBound applies cond's operator against a partially-filled
// Bound (Value/Rarity/IsRarity already set by the caller) onto r,
// reporting lower_bound_redefinition / upper_bound_redefinition when
// the relevant side was already set earlier on this scope path.
func mergeRangeBound(r *lang.RangeCondition, cond ast.Condition, partial lang.Bound, diags *diagnostics.Store) {
	op := lang.OpEqual
	if cond.HasOp {
		parsed, ok := parseOp(cond.Op)
		if !ok {
			return
		}
		op = parsed
	}
	origin := cond.Origin
	setLower := func(inclusive bool) {
		if r.Lower.Set {
			prevOrigin := r.Lower.Origin
			diags.ErrorWithNote(diagnostics.LowerBoundRedefinition, &origin, "lower bound already set on this path", &prevOrigin, "previously set here")
			return
		}
		partial.Set, partial.Inclusive, partial.Origin = true, inclusive, origin
		r.Lower = partial
	}
	setUpper := func(inclusive bool) {
		if r.Upper.Set {
			prevOrigin := r.Upper.Origin
			diags.ErrorWithNote(diagnostics.UpperBoundRedefinition, &origin, "upper bound already set on this path", &prevOrigin, "previously set here")
			return
		}
		partial.Set, partial.Inclusive, partial.Origin = true, inclusive, origin
		r.Upper = partial
	}
	switch op {
	case lang.OpEqual:
		setLower(true)
		setUpper(true)
	case lang.OpLess:
		setUpper(false)
	case lang.OpLessEqual:
		setUpper(true)
	case lang.OpGreater:
		setLower(false)
	case lang.OpGreaterEqual:
		setLower(true)
	case lang.OpNotEqual:
		// "!=" has no representation as a half-open range; the
		// original rejects it here too.
	}
}

func applySocketSpec(sc *lang.SocketSpecCondition, cond ast.Condition, st *symtab.Table, diags *diagnostics.Store) {
	seq, ok := evaluator.EvaluateArity(cond.Args, st, diags, 1, -1)
	if !ok {
		return
	}
	values := make([]lang.SocketSpec, 0, len(seq.Values))
	for _, v := range seq.Values {
		obj, ok := evaluator.GetAs(v, lang.KindSocketSpec, diags)
		if !ok {
			continue
		}
		values = append(values, obj.Socket)
	}
	if len(values) == 0 {
		return
	}
	op := lang.OpEqual
	if cond.HasOp {
		parsed, ok := parseOp(cond.Op)
		if ok {
			op = parsed
		}
	}
	if sc.Set {
		origin := cond.Origin
		prevOrigin := sc.Origin
		diags.ErrorWithNote(diagnostics.ConditionRedefinition, &origin, "condition already set on this path", &prevOrigin, "previously set here")
		return
	}
	sc.Set = true
	sc.Comparison = op
	sc.Values = values
	sc.Origin = cond.Origin
}

func applyStringList(sl *lang.StringListCondition, cond ast.Condition, st *symtab.Table, diags *diagnostics.Store) {
	seq, ok := evaluator.EvaluateArity(cond.Args, st, diags, 1, -1)
	if !ok {
		return
	}
	if sl.Set {
		origin := cond.Origin
		prevOrigin := sl.Origin
		diags.ErrorWithNote(diagnostics.ConditionRedefinition, &origin, "condition already set on this path", &prevOrigin, "previously set here")
		return
	}
	exact := false
	if cond.HasOp {
		// "==" requests exact matching, bare/"=" requests substring
		// matching — the only two operators the original allows on
		// string-list conditions.
		exact = cond.Op == "=="
	}
	strs := make([]string, 0, len(seq.Values))
	for _, v := range seq.Values {
		obj, ok := evaluator.GetAs(v, lang.KindString, diags)
		if !ok {
			continue
		}
		strs = append(strs, obj.Str)
	}
	sl.Set = true
	sl.Strings = strs
	sl.ExactMatch = exact
	sl.Origin = cond.Origin
}

func applyRangedStringList(rsl *lang.RangedStringListCondition, cond ast.Condition, st *symtab.Table, diags *diagnostics.Store) {
	// The trailing arguments are mod/enchantment name substrings; a
	// leading Integer, if present, is the match count, bounded by the
	// condition's operator (`HasExplicitMod >=3 "of Haast"`).
	seq, ok := evaluator.EvaluateArity(cond.Args, st, diags, 1, -1)
	if !ok {
		return
	}
	if rsl.Strings.Set {
		origin := cond.Origin
		prevOrigin := rsl.Strings.Origin
		diags.ErrorWithNote(diagnostics.ConditionRedefinition, &origin, "condition already set on this path", &prevOrigin, "previously set here")
		return
	}
	values := seq.Values
	if len(values) > 1 && values[0].Kind == lang.KindInteger {
		mergeRangeBound(&rsl.Count, cond, lang.Bound{Value: float64(values[0].Int)}, diags)
		values = values[1:]
	}
	strs := make([]string, 0, len(values))
	for _, v := range values {
		obj, ok := evaluator.GetAs(v, lang.KindString, diags)
		if !ok {
			continue
		}
		strs = append(strs, obj.Str)
	}
	rsl.Strings = lang.StringListCondition{Set: true, Strings: strs, ExactMatch: false, Origin: cond.Origin}
}

func applyBool(bc *lang.BoolCondition, cond ast.Condition, st *symtab.Table, diags *diagnostics.Store) {
	seq, ok := evaluator.EvaluateArity(cond.Args, st, diags, 1, 1)
	if !ok {
		return
	}
	obj, ok := evaluator.GetAs(seq.Values[0], lang.KindBoolean, diags)
	if !ok {
		return
	}
	if bc.Set {
		origin := cond.Origin
		prevOrigin := bc.Origin
		diags.ErrorWithNote(diagnostics.ConditionRedefinition, &origin, "condition already set on this path", &prevOrigin, "previously set here")
		return
	}
	bc.Set = true
	bc.Value = obj.Bool
	bc.Origin = cond.Origin
}

func applyInfluence(ic *lang.InfluenceCondition, cond ast.Condition, st *symtab.Table, diags *diagnostics.Store) {
	seq, ok := evaluator.EvaluateArity(cond.Args, st, diags, 1, -1)
	if !ok {
		return
	}
	if ic.Set {
		origin := cond.Origin
		prevOrigin := ic.Origin
		diags.ErrorWithNote(diagnostics.ConditionRedefinition, &origin, "condition already set on this path", &prevOrigin, "previously set here")
		return
	}
	seen := map[lang.Influence]sourcemap.Range{}
	var flags lang.Influence
	for _, v := range seq.Values {
		obj, ok := evaluator.GetAs(v, lang.KindInfluence, diags)
		if !ok {
			continue
		}
		if prevOrigin, dup := seen[obj.Influence]; dup {
			origin := obj.Origin
			diags.ErrorWithNote(diagnostics.DuplicateInfluence, &origin, "influence listed more than once", &prevOrigin, "first listed here")
			continue
		}
		seen[obj.Influence] = obj.Origin
		flags |= obj.Influence
	}
	exact := true
	if cond.HasOp {
		exact = cond.Op == "=="
	}
	ic.Set = true
	ic.Flags = flags
	ic.ExactMatch = exact
	ic.Origin = cond.Origin
}

// autogenKeywords maps the DSL's PascalCase Autogen category keyword
// to its lang.AutogenCategory, independent of the
// snake_case spelling lang.AutogenCategory.String() emits for the item
// price snapshot lookup.
var autogenKeywords = map[string]lang.AutogenCategory{
	"Currency": lang.CatCurrency, "Fragments": lang.CatFragments,
	"DeliriumOrbs": lang.CatDeliriumOrbs, "Cards": lang.CatCards,
	"Essences": lang.CatEssences, "Fossils": lang.CatFossils,
	"Prophecies": lang.CatProphecies,
	"Resonators": lang.CatResonators, "Scarabs": lang.CatScarabs,
	"Incubators": lang.CatIncubators, "Oils": lang.CatOils,
	"Vials": lang.CatVials, "Gems": lang.CatGems, "Bases": lang.CatBases,
	"UniqueEqUnambiguous":     lang.CatUniqueEqUnambiguous,
	"UniqueEqAmbiguous":       lang.CatUniqueEqAmbiguous,
	"UniqueFlasksUnambiguous": lang.CatUniqueFlasksUnambiguous,
	"UniqueFlasksAmbiguous":   lang.CatUniqueFlasksAmbiguous,
	"UniqueJewelsUnambiguous": lang.CatUniqueJewelsUnambiguous,
	"UniqueJewelsAmbiguous":   lang.CatUniqueJewelsAmbiguous,
	"UniqueMapsUnambiguous":   lang.CatUniqueMapsUnambiguous,
	"UniqueMapsAmbiguous":     lang.CatUniqueMapsAmbiguous,
}

func applyAutogenCategory(cond ast.Condition, ag *lang.AutogenExtension, diags *diagnostics.Store) {
	if len(cond.Args.Values) != 1 || !cond.Args.Values[0].IsLiteral {
		origin := cond.Origin
		diags.Error(diagnostics.AutogenError, &origin, "Autogen requires a single category keyword")
		return
	}
	name := cond.Args.Values[0].Literal.Str
	cat, ok := autogenKeywords[name]
	if !ok {
		origin := cond.Origin
		diags.Error(diagnostics.AutogenError, &origin, "unrecognized autogen category %q", name)
		return
	}
	ag.Set = true
	ag.CategorySet = true
	ag.Category = cat
	ag.Origin = cond.Origin
}

func applyPrice(cond ast.Condition, ag *lang.AutogenExtension, st *symtab.Table, diags *diagnostics.Store) {
	if !ag.Set {
		origin := cond.Origin
		diags.Error(diagnostics.PriceWithoutAutogen, &origin, "Price may only appear inside an Autogen block")
		return
	}
	applyRangeNumeric(&ag.PriceRange, cond, st, diags)
}
