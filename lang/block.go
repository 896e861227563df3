package lang

import "github.com/filterspirit/filterspirit/sourcemap"

// Visibility is a block's Show/Hide/Minimal/ShowDiscard/HideDiscard flag.
type Visibility int

const (
	Show Visibility = iota
	Hide
	Minimal
	ShowDiscard
	HideDiscard
)

func (v Visibility) String() string {
	switch v {
	case Show:
		return "Show"
	case Hide:
		return "Hide"
	case Minimal:
		return "Minimal"
	case ShowDiscard:
		return "ShowDiscard"
	case HideDiscard:
		return "HideDiscard"
	default:
		return "?"
	}
}

// ParseVisibility looks up a Visibility by its filter keyword.
func ParseVisibility(s string) (Visibility, bool) {
	switch s {
	case "Show":
		return Show, true
	case "Hide":
		return Hide, true
	case "Minimal":
		return Minimal, true
	case "ShowDiscard":
		return ShowDiscard, true
	case "HideDiscard":
		return HideDiscard, true
	default:
		return 0, false
	}
}

// AutogenCategory is the closed set of autogen categories.
type AutogenCategory int

const (
	CatCurrency AutogenCategory = iota
	CatFragments
	CatDeliriumOrbs
	CatCards
	CatEssences
	CatFossils
	CatProphecies
	CatResonators
	CatScarabs
	CatIncubators
	CatOils
	CatVials
	CatGems
	CatBases
	CatUniqueEqUnambiguous
	CatUniqueEqAmbiguous
	CatUniqueFlasksUnambiguous
	CatUniqueFlasksAmbiguous
	CatUniqueJewelsUnambiguous
	CatUniqueJewelsAmbiguous
	CatUniqueMapsUnambiguous
	CatUniqueMapsAmbiguous
)

var autogenCategoryNames = map[AutogenCategory]string{
	CatCurrency:                "currency",
	CatFragments:               "fragments",
	CatDeliriumOrbs:            "delirium_orbs",
	CatCards:                   "cards",
	CatEssences:                "essences",
	CatFossils:                 "fossils",
	CatProphecies:              "prophecies",
	CatResonators:              "resonators",
	CatScarabs:                 "scarabs",
	CatIncubators:              "incubators",
	CatOils:                    "oils",
	CatVials:                   "vials",
	CatGems:                    "gems",
	CatBases:                   "bases",
	CatUniqueEqUnambiguous:     "uniques_eq_unambiguous",
	CatUniqueEqAmbiguous:       "uniques_eq_ambiguous",
	CatUniqueFlasksUnambiguous: "uniques_flasks_unambiguous",
	CatUniqueFlasksAmbiguous:   "uniques_flasks_ambiguous",
	CatUniqueJewelsUnambiguous: "uniques_jewels_unambiguous",
	CatUniqueJewelsAmbiguous:   "uniques_jewels_ambiguous",
	CatUniqueMapsUnambiguous:   "uniques_maps_unambiguous",
	CatUniqueMapsAmbiguous:     "uniques_maps_ambiguous",
}

func (c AutogenCategory) String() string { return autogenCategoryNames[c] }

// ParseAutogenCategory looks up an AutogenCategory by its keyword.
func ParseAutogenCategory(s string) (AutogenCategory, bool) {
	for k, v := range autogenCategoryNames {
		if v == s {
			return k, true
		}
	}
	return 0, false
}

// IsAmbiguousUnique reports whether the category stores
// (base_type -> []unique_items) rather than (base_type -> unique_item).
func (c AutogenCategory) IsAmbiguousUnique() bool {
	switch c {
	case CatUniqueEqAmbiguous, CatUniqueFlasksAmbiguous, CatUniqueJewelsAmbiguous, CatUniqueMapsAmbiguous:
		return true
	}
	return false
}

// IsUnique reports whether the category is one of the unique-item
// categories at all (ambiguous or not).
func (c AutogenCategory) IsUnique() bool {
	switch c {
	case CatUniqueEqUnambiguous, CatUniqueEqAmbiguous,
		CatUniqueFlasksUnambiguous, CatUniqueFlasksAmbiguous,
		CatUniqueJewelsUnambiguous, CatUniqueJewelsAmbiguous,
		CatUniqueMapsUnambiguous, CatUniqueMapsAmbiguous:
		return true
	}
	return false
}

// AutogenExtension carries the Autogen category and Price range a
// spirit-filter block was annotated with.
type AutogenExtension struct {
	Set        bool
	Category   AutogenCategory
	CategorySet bool
	PriceRange RangeCondition
	Origin     sourcemap.Range
}

// Block is a fully materialized item-filter block: visibility,
// condition set, and action set.
type Block struct {
	Visibility Visibility
	Conditions ConditionSet
	Actions    ActionSet
	Origin     sourcemap.Range
}

// SpiritBlock additionally carries an optional autogen extension,
// produced by the spirit-filter block compiler before the autogen
// expander runs.
type SpiritBlock struct {
	Block
	Autogen AutogenExtension
}
