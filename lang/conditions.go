package lang

import "github.com/filterspirit/filterspirit/sourcemap"

// ComparisonOp is the set of relational operators a condition or range
// bound can carry.
type ComparisonOp int

const (
	OpLess ComparisonOp = iota
	OpLessEqual
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
)

func (o ComparisonOp) String() string {
	switch o {
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// Bound is one end of a RangeCondition: a value, whether it is
// inclusive, and the origin of the clause that set it.
type Bound struct {
	Set       bool
	Value     float64 // numeric ranges store both Integer and Fractional as float64
	Rarity    Rarity   // populated instead of Value when the range is over Rarity
	IsRarity  bool
	Inclusive bool
	Origin    sourcemap.Range
}

// RangeCondition is an ordered pair of optional bounds.
// `=`/`==` sets both bounds to the same inclusive value ("exact").
type RangeCondition struct {
	Lower, Upper Bound
}

// IsExact reports whether both bounds are set, inclusive, and equal —
// the shape produced by an `=`/`==` clause.
func (r RangeCondition) IsExact() bool {
	if !r.Lower.Set || !r.Upper.Set || !r.Lower.Inclusive || !r.Upper.Inclusive {
		return false
	}
	if r.Lower.IsRarity {
		return r.Lower.Rarity == r.Upper.Rarity
	}
	return r.Lower.Value == r.Upper.Value
}

// BoolCondition is an optional boolean flag condition.
type BoolCondition struct {
	Set    bool
	Value  bool
	Origin sourcemap.Range
}

// StringListCondition is a Class/BaseType/Prophecy/HasEnchantment(passive
// node)/ArchnemesisMod condition.
type StringListCondition struct {
	Set        bool
	Strings    []string
	ExactMatch bool
	Origin     sourcemap.Range
}

// RangedStringListCondition combines a StringListCondition with an
// integer range over the *count* of matching mods (HasExplicitMod,
// HasEnchantment on items).
type RangedStringListCondition struct {
	Set     bool
	Strings StringListCondition
	Count   RangeCondition
}

// SocketSpecCondition backs Sockets/SocketGroup.
type SocketSpecCondition struct {
	Set        bool
	Comparison ComparisonOp
	Values     []SocketSpec
	Origin     sourcemap.Range
}

// InfluenceCondition backs HasInfluence.
type InfluenceCondition struct {
	Set        bool
	Flags      Influence // bitwise OR of requested Influence flags; 0 means "None"
	ExactMatch bool
	Origin     sourcemap.Range
}

// ConditionSet holds at most one instance of each condition property.
// The compiler threads a ConditionSet by value through nested scopes,
// copying on enter so a child scope can never mutate its ancestor's.
type ConditionSet struct {
	ItemLevel  RangeCondition
	DropLevel  RangeCondition
	Quality    RangeCondition
	RarityCond RangeCondition
	Sockets    SocketSpecCondition
	SocketGroup SocketSpecCondition
	Height     RangeCondition
	Width      RangeCondition
	StackSize  RangeCondition
	GemLevel   RangeCondition
	MapTier    RangeCondition

	Class             StringListCondition
	BaseType          StringListCondition
	Prophecy          StringListCondition
	ArchnemesisMod    StringListCondition
	HasExplicitMod    RangedStringListCondition
	HasEnchantment    RangedStringListCondition

	Identified       BoolCondition
	Corrupted        BoolCondition
	Mirrored         BoolCondition
	ElderItem        BoolCondition
	ShaperItem       BoolCondition
	FracturedItem    BoolCondition
	SynthesisedItem  BoolCondition
	AnyEnchantment   BoolCondition
	ShapedMap        BoolCondition

	HasInfluence InfluenceCondition
}

// HasStringLists reports whether any string-list condition is present,
// used by IsValid below.
func (c ConditionSet) emptyStringLists() []string {
	var empty []string
	check := func(name string, cond StringListCondition) {
		if cond.Set && len(cond.Strings) == 0 {
			empty = append(empty, name)
		}
	}
	check("Class", c.Class)
	check("BaseType", c.BaseType)
	check("Prophecy", c.Prophecy)
	check("ArchnemesisMod", c.ArchnemesisMod)
	check("HasExplicitMod", c.HasExplicitMod.Strings)
	check("HasEnchantment", c.HasEnchantment.Strings)
	return empty
}

// IsValid reports whether the condition set may be emitted: every
// present string-list condition has at least one string.
func (c ConditionSet) IsValid() bool {
	return len(c.emptyStringLists()) == 0
}
