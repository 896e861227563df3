package autogen

import (
	"strings"

	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/lang"
)

// classForCategory is the category-standard Class condition the
// expander attaches alongside the synthesized name list.
var classForCategory = map[lang.AutogenCategory]string{
	lang.CatCurrency:     "Currency",
	lang.CatFragments:    "Map Fragments",
	lang.CatDeliriumOrbs: "Currency",
	lang.CatCards:        "Divination Card",
	lang.CatEssences:     "Essences",
	lang.CatFossils:      "Currency",
	lang.CatResonators:   "Currency",
	lang.CatScarabs:      "Map Fragments",
	lang.CatIncubators:   "Currency",
	lang.CatOils:         "Currency",
	lang.CatVials:        "Currency",
	lang.CatGems:         "Gems",
}

// Expand synthesizes the BaseType/Prophecy (plus category-standard
// Class/Rarity) condition an autogen-extended block needs, against
// snap. Blocks with no autogen extension pass through
// unchanged. ok is false when the block must be dropped at emission
// (either a prerequisite condition is missing, or the resulting name
// list is empty).
func Expand(sb lang.SpiritBlock, snap Snapshot, diags *diagnostics.Store) (lang.Block, bool) {
	ag := sb.Autogen
	if !ag.Set || !ag.CategorySet {
		return sb.Block, true
	}
	origin := ag.Origin
	cs := sb.Conditions

	switch ag.Category {
	case lang.CatGems:
		if !cs.GemLevel.Lower.Set && !cs.GemLevel.Upper.Set ||
			!cs.Quality.Lower.Set && !cs.Quality.Upper.Set || !cs.Corrupted.Set {
			diags.Error(diagnostics.AutogenError, &origin, "Autogen gems requires GemLevel, Quality, and Corrupted conditions")
			return lang.Block{}, false
		}
	case lang.CatBases:
		if !cs.ItemLevel.Lower.Set && !cs.ItemLevel.Upper.Set {
			diags.Error(diagnostics.AutogenError, &origin, "Autogen bases requires an ItemLevel condition")
			return lang.Block{}, false
		}
		if !cs.HasInfluence.Set || !cs.HasInfluence.ExactMatch {
			diags.Error(diagnostics.AutogenError, &origin, "Autogen bases requires an exact-match HasInfluence condition")
			return lang.Block{}, false
		}
	}

	names := DedupeNames(collectNames(ag.Category, snap, cs, ag.PriceRange))
	if len(names) == 0 {
		return lang.Block{}, false
	}

	if ag.Category == lang.CatProphecies {
		cs.Prophecy = lang.StringListCondition{Set: true, Strings: names, ExactMatch: true, Origin: origin}
	} else {
		cs.BaseType = lang.StringListCondition{Set: true, Strings: names, ExactMatch: true, Origin: origin}
	}

	if className, ok := classForCategory[ag.Category]; ok {
		cs.Class = lang.StringListCondition{Set: true, Strings: []string{className}, ExactMatch: true, Origin: origin}
	}
	if ag.Category.IsUnique() {
		cs.RarityCond = lang.RangeCondition{
			Lower: lang.Bound{Set: true, Rarity: lang.RarityUnique, IsRarity: true, Inclusive: true, Origin: origin},
			Upper: lang.Bound{Set: true, Rarity: lang.RarityUnique, IsRarity: true, Inclusive: true, Origin: origin},
		}
	}
	if ag.Category == lang.CatBases {
		cs.Corrupted = lang.BoolCondition{Set: true, Value: false, Origin: origin}
		cs.Mirrored = lang.BoolCondition{Set: true, Value: false, Origin: origin}
		if !cs.RarityCond.Lower.Set && !cs.RarityCond.Upper.Set {
			cs.RarityCond = lang.RangeCondition{
				Lower: lang.Bound{Set: true, Rarity: lang.RarityNormal, IsRarity: true, Inclusive: true, Origin: origin},
				Upper: lang.Bound{Set: true, Rarity: lang.RarityRare, IsRarity: true, Inclusive: true, Origin: origin},
			}
		}
	}

	return lang.Block{Visibility: sb.Visibility, Conditions: cs, Actions: sb.Actions, Origin: sb.Origin}, true
}

func collectNames(cat lang.AutogenCategory, snap Snapshot, cs lang.ConditionSet, priceRange lang.RangeCondition) []string {
	switch cat {
	case lang.CatCurrency:
		return filterElems(snap.Currency, cs, priceRange)
	case lang.CatFragments:
		return filterElems(snap.Fragments, cs, priceRange)
	case lang.CatDeliriumOrbs:
		return filterElems(snap.DeliriumOrbs, cs, priceRange)
	case lang.CatEssences:
		return filterElems(snap.Essences, cs, priceRange)
	case lang.CatFossils:
		return filterElems(snap.Fossils, cs, priceRange)
	case lang.CatProphecies:
		return filterElems(snap.Prophecies, cs, priceRange)
	case lang.CatResonators:
		return filterElems(snap.Resonators, cs, priceRange)
	case lang.CatScarabs:
		return filterElems(snap.Scarabs, cs, priceRange)
	case lang.CatIncubators:
		return filterElems(snap.Incubators, cs, priceRange)
	case lang.CatOils:
		return filterElems(snap.Oils, cs, priceRange)
	case lang.CatVials:
		return filterElems(snap.Vials, cs, priceRange)
	case lang.CatCards:
		elems := make([]Elem, len(snap.Cards))
		for i, c := range snap.Cards {
			elems[i] = c.Elem
		}
		return filterElems(elems, cs, priceRange)
	case lang.CatGems:
		var out []string
		for _, g := range snap.Gems {
			if !priceMatches(g.Price, priceRange) {
				continue
			}
			if !rangeContainsFloat(cs.GemLevel, float64(g.Level)) {
				continue
			}
			if !rangeContainsFloat(cs.Quality, float64(g.Quality)) {
				continue
			}
			if cs.Corrupted.Set && cs.Corrupted.Value != g.Corrupted {
				continue
			}
			if !nameAllowed(cs.BaseType, g.Name) {
				continue
			}
			out = append(out, g.Name)
		}
		return out
	case lang.CatBases:
		var out []string
		for _, b := range snap.Bases {
			if !priceMatches(b.Price, priceRange) {
				continue
			}
			if !rangeContainsFloat(cs.ItemLevel, float64(b.ItemLevel)) {
				continue
			}
			if !influenceMatchesExact(cs.HasInfluence, b.Influence) {
				continue
			}
			if !nameAllowed(cs.BaseType, b.Name) {
				continue
			}
			out = append(out, b.Name)
		}
		return out
	default:
		uc := uniqueCategoryFor(cat, snap)
		if cat.IsAmbiguousUnique() {
			var out []string
			for baseType, uniques := range uc.Ambiguous {
				for _, u := range uniques {
					if priceMatches(u.Price, priceRange) {
						out = append(out, baseType)
						break
					}
				}
			}
			return out
		}
		var out []string
		for baseType, u := range uc.Unambiguous {
			if priceMatches(u.Price, priceRange) {
				out = append(out, baseType)
			}
		}
		return out
	}
}

func uniqueCategoryFor(cat lang.AutogenCategory, snap Snapshot) UniqueCategory {
	switch cat {
	case lang.CatUniqueEqUnambiguous, lang.CatUniqueEqAmbiguous:
		return snap.UniqueEq
	case lang.CatUniqueFlasksUnambiguous, lang.CatUniqueFlasksAmbiguous:
		return snap.UniqueFlasks
	case lang.CatUniqueJewelsUnambiguous, lang.CatUniqueJewelsAmbiguous:
		return snap.UniqueJewels
	case lang.CatUniqueMapsUnambiguous, lang.CatUniqueMapsAmbiguous:
		return snap.UniqueMaps
	default:
		return UniqueCategory{}
	}
}

func filterElems(elems []Elem, cs lang.ConditionSet, priceRange lang.RangeCondition) []string {
	var out []string
	for _, e := range elems {
		if !priceMatches(e.Price, priceRange) {
			continue
		}
		if !nameAllowed(cs.BaseType, e.Name) {
			continue
		}
		out = append(out, e.Name)
	}
	return out
}

// priceMatches reports whether an item's price falls inside
// price_range and it is not low_confidence.
func priceMatches(p Price, r lang.RangeCondition) bool {
	if p.LowConfidence {
		return false
	}
	return rangeContainsFloat(r, p.ChaosValue)
}

// nameAllowed honors any pre-existing BaseType condition as an
// allow-list pre-filter; an unset condition
// allows everything.
func nameAllowed(bt lang.StringListCondition, name string) bool {
	if !bt.Set {
		return true
	}
	for _, s := range bt.Strings {
		if bt.ExactMatch && s == name {
			return true
		}
		if !bt.ExactMatch && strings.Contains(strings.ToLower(name), strings.ToLower(s)) {
			return true
		}
	}
	return false
}

func rangeContainsFloat(r lang.RangeCondition, v float64) bool {
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

func influenceMatchesExact(ic lang.InfluenceCondition, inf Influence) bool {
	if !ic.Set {
		return true
	}
	var flags lang.Influence
	if inf.Shaper {
		flags |= lang.InfluenceShaper
	}
	if inf.Elder {
		flags |= lang.InfluenceElder
	}
	if inf.Crusader {
		flags |= lang.InfluenceCrusader
	}
	if inf.Redeemer {
		flags |= lang.InfluenceRedeemer
	}
	if inf.Hunter {
		flags |= lang.InfluenceHunter
	}
	if inf.Warlord {
		flags |= lang.InfluenceWarlord
	}
	return flags == ic.Flags
}
