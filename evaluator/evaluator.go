// Package evaluator implements the object evaluator shared by the
// symbol resolver and the block compiler: it
// turns an AST sequence into a typed lang.Sequence under a symbol
// table, performing name-reference flattening and promotion.
package evaluator

import (
	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/lang"
	"github.com/filterspirit/filterspirit/sourcemap"
	"github.com/filterspirit/filterspirit/symtab"
)

// Evaluate turns an ast.Sequence into a lang.Sequence under st,
// appending diagnostics for any unresolved name, subtree misuse, or
// unknown token. It never fails outright — unresolvable elements are
// skipped so sibling elements can still be reported — the returned bool is false only
// when every element failed to resolve, leaving an empty sequence
// (which a caller should never otherwise be able to construct).
func Evaluate(seq ast.Sequence, st *symtab.Table, diags *diagnostics.Store) (lang.Sequence, bool) {
	out := lang.Sequence{Origin: toRange(seq.Origin)}
	for _, prim := range seq.Values {
		objs, ok := evalPrimitive(prim, st, diags)
		if ok {
			out.Values = append(out.Values, objs...)
		}
	}
	return out, len(out.Values) > 0
}

// EvaluateArity evaluates seq and additionally enforces the caller's
// required arity [min,max]. max<0 means unbounded.
func EvaluateArity(seq ast.Sequence, st *symtab.Table, diags *diagnostics.Store, min, max int) (lang.Sequence, bool) {
	out, ok := Evaluate(seq, st, diags)
	if !ok {
		return out, false
	}
	n := len(out.Values)
	if n < min || (max >= 0 && n > max) {
		origin := toRange(seq.Origin)
		diags.Error(diagnostics.InvalidAmountOfArguments, &origin,
			"expected between %d and %d arguments, got %d", min, maxOrMin(max, min), n)
		return out, false
	}
	return out, true
}

func maxOrMin(max, min int) int {
	if max < 0 {
		return min
	}
	return max
}

func toRange(r sourcemap.Range) sourcemap.Range { return r }

// evalPrimitive evaluates one primitive_value node. A name reference
// that binds a multi-element sequence is flattened into the caller's
// sequence instead of nesting.
func evalPrimitive(prim ast.PrimitiveValue, st *symtab.Table, diags *diagnostics.Store) ([]lang.Object, bool) {
	switch {
	case prim.IsNameRef:
		return evalNameRef(prim, st, diags)
	case prim.IsLiteral:
		obj, ok := evalLiteral(prim.Literal, diags)
		if !ok {
			return nil, false
		}
		return []lang.Object{obj}, true
	default: // IsUnknown
		origin := prim.Origin
		diags.Error(diagnostics.UnknownExpression, &origin, "unrecognized token %q", prim.Raw)
		return nil, false
	}
}

func evalNameRef(prim ast.PrimitiveValue, st *symtab.Table, diags *diagnostics.Store) ([]lang.Object, bool) {
	if entry, ok := st.LookupObject(prim.Name); ok {
		return entry.Value.Values, true
	}
	if _, ok := st.LookupSubtree(prim.Name); ok {
		origin := prim.Origin
		diags.Error(diagnostics.TypeMismatch, &origin,
			"%q refers to a compound action, not a value; if you want to run it here write \"Set $%s\" instead", prim.Name, prim.Name)
		return nil, false
	}
	origin := prim.Origin
	diags.Error(diagnostics.NoSuchName, &origin, "no such name: %q", prim.Name)
	return nil, false
}

func evalLiteral(lit ast.Literal, diags *diagnostics.Store) (lang.Object, bool) {
	switch lit.Kind {
	case ast.LitInt:
		return lang.Object{Kind: lang.KindInteger, Origin: lit.Origin, Int: lit.Int}, true
	case ast.LitFrac:
		return lang.Object{Kind: lang.KindFractional, Origin: lit.Origin, Frac: lit.Frac}, true
	case ast.LitString:
		return lang.Object{Kind: lang.KindString, Origin: lit.Origin, Str: lit.Str}, true
	case ast.LitSocketSpec:
		return evalSocketLiteral(lit, diags)
	case ast.LitEnumKeyword:
		return evalEnumKeyword(lit, diags)
	default:
		origin := lit.Origin
		diags.Error(diagnostics.InternalCompilerError, &origin, "unreachable literal kind")
		return lang.Object{}, false
	}
}

func evalEnumKeyword(lit ast.Literal, diags *diagnostics.Store) (lang.Object, bool) {
	s := lit.Str
	switch s {
	case "None":
		return lang.Object{Kind: lang.KindNone, Origin: lit.Origin}, true
	case "Temp":
		return lang.Object{Kind: lang.KindTemp, Origin: lit.Origin}, true
	case "True":
		return lang.Object{Kind: lang.KindBoolean, Origin: lit.Origin, Bool: true}, true
	case "False":
		return lang.Object{Kind: lang.KindBoolean, Origin: lit.Origin, Bool: false}, true
	}
	if r, ok := lang.ParseRarity(s); ok {
		return lang.Object{Kind: lang.KindRarity, Origin: lit.Origin, Rarity: r}, true
	}
	if sh, ok := lang.ParseShape(s); ok {
		return lang.Object{Kind: lang.KindShape, Origin: lit.Origin, Shape: sh}, true
	}
	if su, ok := lang.ParseSuit(s); ok {
		return lang.Object{Kind: lang.KindSuit, Origin: lit.Origin, Suit: su}, true
	}
	if inf, ok := lang.ParseInfluence(s); ok {
		return lang.Object{Kind: lang.KindInfluence, Origin: lit.Origin, Influence: inf}, true
	}
	if vl, ok := lang.ParseShaperVoiceLine(s); ok {
		return lang.Object{Kind: lang.KindShaperVoiceLine, Origin: lit.Origin, VoiceLine: vl}, true
	}
	if gq, ok := lang.ParseGemQualityType(s); ok {
		return lang.Object{Kind: lang.KindGemQualityType, Origin: lit.Origin, GemQuality: gq}, true
	}
	origin := lit.Origin
	diags.Error(diagnostics.TypeMismatch, &origin, "%q is not a recognized keyword or name reference", s)
	return lang.Object{}, false
}

// evalSocketLiteral validates a `5RGB`-shaped literal:
// letters limited to R/G/B/W/A/D, at least one non-zero field, count
// (explicit or implied) <= 6, and A/D may not appear alongside colored
// links. An empty-letters literal (operator with no values) is rejected
// here, at evaluation, not at parse time.
func evalSocketLiteral(lit ast.Literal, diags *diagnostics.Store) (lang.Object, bool) {
	spec := lang.SocketSpec{Count: lit.Socket.Count}
	hasLinks := false
	for i := 0; i < len(lit.Socket.Letters); i++ {
		switch lit.Socket.Letters[i] {
		case 'R':
			spec.R++
			hasLinks = true
		case 'G':
			spec.G++
			hasLinks = true
		case 'B':
			spec.B++
			hasLinks = true
		case 'W':
			spec.W++
			hasLinks = true
		case 'A':
			spec.A++
		case 'D':
			spec.D++
		default:
			origin := lit.Origin
			diags.Error(diagnostics.IllegalCharacterInSocketSpec, &origin, "illegal character %q in socket spec", string(lit.Socket.Letters[i]))
			return lang.Object{}, false
		}
	}
	if spec.NonZeroFieldCount() == 0 {
		origin := lit.Origin
		diags.Error(diagnostics.InvalidSocketSpec, &origin, "socket spec must have at least one non-zero field")
		return lang.Object{}, false
	}
	if spec.Count != nil && (*spec.Count < 1 || *spec.Count > 6) {
		origin := lit.Origin
		diags.Error(diagnostics.InvalidSocketSpec, &origin, "socket count must be between 1 and 6")
		return lang.Object{}, false
	}
	if spec.Count == nil && spec.LinkCount()+int(spec.A)+int(spec.D) > 6 {
		origin := lit.Origin
		diags.Error(diagnostics.InvalidSocketSpec, &origin, "socket spec may not have more than 6 letters")
		return lang.Object{}, false
	}
	if hasLinks && (spec.A != 0 || spec.D != 0) {
		origin := lit.Origin
		diags.Error(diagnostics.InvalidSocketSpec, &origin, "'A' and 'D' may not appear together with linked colors")
		return lang.Object{}, false
	}
	return lang.Object{Kind: lang.KindSocketSpec, Origin: lit.Origin, Socket: spec}, true
}

// GetAs returns obj's value re-typed as expected, attempting the
// one-step promotion table on a mismatch. Emits type_mismatch and returns ok=false when
// neither the direct kind nor promotion applies.
func GetAs(obj lang.Object, expected lang.Kind, diags *diagnostics.Store) (lang.Object, bool) {
	if obj.Kind == expected {
		return obj, true
	}
	if promoted, ok := lang.Promote(obj, expected); ok {
		return promoted, true
	}
	origin := obj.Origin
	diags.Error(diagnostics.TypeMismatch, &origin, "expected %s, got %s", expected, obj.Kind)
	return lang.Object{}, false
}
