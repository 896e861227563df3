package lang

// promoteFunc attempts to convert obj (already known not to be of the
// expected kind) into the expected kind, returning ok=false when the
// source value's concrete payload can't be promoted. Promotion is a
// single step; it is never retried with a second table lookup.
type promoteFunc func(obj Object) (Object, bool)

// promotionTable is keyed by (expected, actual) kind pairs, one entry
// per allowed implicit conversion.
var promotionTable = map[[2]Kind]promoteFunc{
	{KindFractional, KindInteger}: func(obj Object) (Object, bool) {
		return Object{Kind: KindFractional, Origin: obj.Origin, Frac: float64(obj.Int)}, true
	},
	{KindSocketSpec, KindInteger}: func(obj Object) (Object, bool) {
		if obj.Int < 1 || obj.Int > 6 {
			return Object{}, false
		}
		count := int(obj.Int)
		return Object{Kind: KindSocketSpec, Origin: obj.Origin, Socket: SocketSpec{Count: &count}}, true
	},
}

// Promote attempts the single-step promotion of obj to expected, via
// the static table above. Returns ok=false when no rule applies (the
// caller then emits type_mismatch).
func Promote(obj Object, expected Kind) (Object, bool) {
	if obj.Kind == expected {
		return obj, true
	}
	if fn, ok := promotionTable[[2]Kind{expected, obj.Kind}]; ok {
		return fn(obj)
	}
	return Object{}, false
}

// PromoteSequenceToSocketSpec promotes a one-element sequence to the
// element's own (possibly further-promoted) SocketSpec value, when the
// single element is an Integer or already a SocketSpec.
func PromoteSequenceToSocketSpec(seq Sequence) (Object, bool) {
	if len(seq.Values) != 1 {
		return Object{}, false
	}
	return Promote(seq.Values[0], KindSocketSpec)
}
