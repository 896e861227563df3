// Package autogen implements the autogen expander: given a compiled spirit-filter block carrying an autogen
// extension and an immutable market-data snapshot, it synthesizes the
// block's name-list condition and drops the category/price bookkeeping
// that only the spirit filter needed.
package autogen

// Price is one item's market valuation.
type Price struct {
	ChaosValue    float64
	LowConfidence bool
}

// Elem is the common shape every snapshot entry embeds.
type Elem struct {
	Price Price
	Name  string
}

// DivinationCard is a cards-category entry.
type DivinationCard struct {
	Elem
	StackSize int32
}

// Gem is a gems-category entry.
type Gem struct {
	Elem
	Level     int32
	Quality   int32
	Corrupted bool
}

// Influence is the set of influence flags an autogenerated base may carry.
type Influence struct {
	Shaper, Elder, Crusader, Redeemer, Hunter, Warlord bool
}

// Base is a bases-category entry.
type Base struct {
	Elem
	ItemLevel int32
	Influence Influence
}

// AmbiguousUniqueGroup is one base type's associated uniques, for the
// categories that store (base_type -> [unique_items]).
type AmbiguousUniqueGroup struct {
	BaseType string
	Uniques  []Elem
}

// UniqueCategory holds both shapes a unique-item category's snapshot
// data may take: an unambiguous base_type -> unique_item
// map, and an ambiguous base_type -> []unique_item map.
type UniqueCategory struct {
	Unambiguous map[string]Elem
	Ambiguous   map[string][]Elem
}

// Snapshot is the whole immutable market-data snapshot the expander
// consumes.
type Snapshot struct {
	LeagueName string
	DataSource string

	Currency      []Elem
	Fragments     []Elem
	DeliriumOrbs  []Elem
	Cards         []DivinationCard
	Essences      []Elem
	Fossils       []Elem
	Prophecies    []Elem
	Resonators    []Elem
	Scarabs       []Elem
	Incubators    []Elem
	Oils          []Elem
	Vials         []Elem
	Gems          []Gem
	Bases         []Base
	UniqueEq      UniqueCategory
	UniqueFlasks  UniqueCategory
	UniqueJewels  UniqueCategory
	UniqueMaps    UniqueCategory
}

// Empty returns a Snapshot with no entries in any category, used when
// no market-data source is configured.
func Empty() Snapshot { return Snapshot{} }
