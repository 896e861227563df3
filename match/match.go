package match

import (
	"strings"

	"github.com/filterspirit/filterspirit/lang"
)

// Match iterates blocks in order and returns the first whose condition
// set is satisfied by item, along with its action set.
// ok is false if no block matches.
func Match(blocks []lang.Block, item Item) (lang.Block, bool) {
	for _, b := range blocks {
		if satisfies(b.Conditions, item) {
			return b, true
		}
	}
	return lang.Block{}, false
}

func satisfies(cs lang.ConditionSet, item Item) bool {
	return rangeMatches(cs.ItemLevel, float64(item.ItemLevel)) &&
		rangeMatches(cs.DropLevel, float64(item.DropLevel)) &&
		rangeMatches(cs.Quality, float64(item.Quality)) &&
		rarityRangeMatches(cs.RarityCond, item.Rarity) &&
		socketSpecMatches(cs.SocketGroup, item, true) &&
		socketSpecMatches(cs.Sockets, item, false) &&
		rangeMatches(cs.Height, float64(item.Height)) &&
		rangeMatches(cs.Width, float64(item.Width)) &&
		rangeMatches(cs.StackSize, float64(item.StackSize)) &&
		rangeMatches(cs.GemLevel, float64(item.GemLevel)) &&
		rangeMatches(cs.MapTier, float64(item.MapTier)) &&
		stringListMatches(cs.Class, item.Class) &&
		stringListMatches(cs.BaseType, item.BaseType) &&
		stringListMatches(cs.Prophecy, item.Prophecy) &&
		stringListMatchesAny(cs.ArchnemesisMod, item.ArchnemesisMods) &&
		rangedStringListMatches(cs.HasExplicitMod, item.ExplicitMods) &&
		rangedStringListMatches(cs.HasEnchantment, item.EnchantmentMods) &&
		boolMatches(cs.Identified, item.Identified) &&
		boolMatches(cs.Corrupted, item.Corrupted) &&
		boolMatches(cs.Mirrored, item.Mirrored) &&
		boolMatches(cs.ElderItem, item.ElderItem) &&
		boolMatches(cs.ShaperItem, item.ShaperItem) &&
		boolMatches(cs.FracturedItem, item.FracturedItem) &&
		boolMatches(cs.SynthesisedItem, item.SynthesisedItem) &&
		boolMatches(cs.AnyEnchantment, item.AnyEnchantment) &&
		boolMatches(cs.ShapedMap, item.ShapedMap) &&
		influenceMatches(cs.HasInfluence, item.Influence)
}

func rangeMatches(r lang.RangeCondition, v float64) bool {
	if r.Lower.Set {
		if r.Lower.Inclusive && v < r.Lower.Value {
			return false
		}
		if !r.Lower.Inclusive && v <= r.Lower.Value {
			return false
		}
	}
	if r.Upper.Set {
		if r.Upper.Inclusive && v > r.Upper.Value {
			return false
		}
		if !r.Upper.Inclusive && v >= r.Upper.Value {
			return false
		}
	}
	return true
}

// rarityRangeMatches compares via Rarity's total order.
func rarityRangeMatches(r lang.RangeCondition, rarity lang.Rarity) bool {
	if r.Lower.Set {
		if r.Lower.Inclusive && rarity < r.Lower.Rarity {
			return false
		}
		if !r.Lower.Inclusive && rarity <= r.Lower.Rarity {
			return false
		}
	}
	if r.Upper.Set {
		if r.Upper.Inclusive && rarity > r.Upper.Rarity {
			return false
		}
		if !r.Upper.Inclusive && rarity >= r.Upper.Rarity {
			return false
		}
	}
	return true
}

func boolMatches(c lang.BoolCondition, v bool) bool {
	if !c.Set {
		return true
	}
	return c.Value == v
}

func stringListMatches(c lang.StringListCondition, value string) bool {
	if !c.Set {
		return true
	}
	for _, s := range c.Strings {
		if stringMatches(c.ExactMatch, s, value) {
			return true
		}
	}
	return false
}

// stringListMatchesAny is used by ArchnemesisMod, where the item
// itself carries a list of mods rather than a single value.
func stringListMatchesAny(c lang.StringListCondition, values []string) bool {
	if !c.Set {
		return true
	}
	for _, v := range values {
		if stringListMatches(c, v) {
			return true
		}
	}
	return false
}

func stringMatches(exact bool, spec, value string) bool {
	if exact {
		return spec == value
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(spec))
}

// rangedStringListMatches counts how many of the item's mods satisfy
// the strings condition, then checks that count against the range.
func rangedStringListMatches(c lang.RangedStringListCondition, mods []string) bool {
	if !c.Strings.Set {
		return true
	}
	count := 0
	for _, m := range mods {
		if stringListMatches(c.Strings, m) {
			count++
		}
	}
	return rangeMatches(c.Count, float64(count))
}

// socketSpecMatches implements the coverage rules:
// SocketGroup (linked) must be covered by a single linked group;
// Sockets (unlinked) must be covered across the item's sockets as a
// whole.
func socketSpecMatches(c lang.SocketSpecCondition, item Item, linked bool) bool {
	if !c.Set {
		return true
	}
	for _, spec := range c.Values {
		if linked {
			for _, g := range item.SocketGroups {
				if socketGroupSatisfies(c.Comparison, spec, g) {
					return true
				}
			}
		} else if socketGroupSatisfies(c.Comparison, spec, item.TotalSockets()) {
			return true
		}
	}
	return false
}

// socketGroupSatisfies checks spec against g. With an explicit count,
// op compares g's total socket count with it, and each non-zero color
// count of the spec must be covered (g has at least that many). Without
// a count, op compares each of the spec's non-zero color counts with g's.
func socketGroupSatisfies(op lang.ComparisonOp, spec lang.SocketSpec, g SocketGroup) bool {
	letterOp := op
	if spec.Count != nil {
		if !compareInt(op, g.Count(), int(*spec.Count)) {
			return false
		}
		letterOp = lang.OpGreaterEqual
	}
	letters := []struct{ want, have uint8 }{
		{spec.R, g.R}, {spec.G, g.G}, {spec.B, g.B},
		{spec.W, g.W}, {spec.A, g.A}, {spec.D, g.D},
	}
	for _, l := range letters {
		if l.want == 0 {
			continue
		}
		if !compareInt(letterOp, int(l.have), int(l.want)) {
			return false
		}
	}
	return true
}

func compareInt(op lang.ComparisonOp, have, want int) bool {
	switch op {
	case lang.OpLess:
		return have < want
	case lang.OpLessEqual:
		return have <= want
	case lang.OpEqual:
		return have == want
	case lang.OpNotEqual:
		return have != want
	case lang.OpGreater:
		return have > want
	case lang.OpGreaterEqual:
		return have >= want
	default:
		return false
	}
}

// influenceMatches implements the exact-vs-subset rule.
func influenceMatches(c lang.InfluenceCondition, flags lang.Influence) bool {
	if !c.Set {
		return true
	}
	if c.ExactMatch {
		return flags == c.Flags
	}
	return flags&c.Flags == c.Flags
}
