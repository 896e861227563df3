// Package match implements the item matcher: given a
// compiled real filter and an item, it finds the first block whose
// condition set is satisfied by the item and returns the style its
// action set produces.
package match

import "github.com/filterspirit/filterspirit/lang"

// SocketGroup is one linked group of sockets on an item, e.g. a 3-link
// is one group of 3 letters; an item's total sockets are the
// concatenation of all its groups.
type SocketGroup struct {
	R, G, B, W, A, D uint8
}

// Count is the group's total socket count.
func (g SocketGroup) Count() int {
	return int(g.R) + int(g.G) + int(g.B) + int(g.W) + int(g.A) + int(g.D)
}

// Item is the fixture the matcher evaluates a real filter against.
type Item struct {
	ItemLevel, DropLevel, Quality int32
	Rarity                        lang.Rarity
	SocketGroups                  []SocketGroup
	Height, Width, StackSize      int32
	GemLevel, MapTier             int32

	Class, BaseType, Prophecy string
	ArchnemesisMods           []string
	ExplicitMods              []string
	EnchantmentMods           []string

	Identified      bool
	Corrupted       bool
	Mirrored        bool
	ElderItem       bool
	ShaperItem      bool
	FracturedItem   bool
	SynthesisedItem bool
	AnyEnchantment  bool
	ShapedMap       bool

	Influence lang.Influence

	// HasCustomAlertSound/HasNoDropSoundOverride are not item
	// properties; the matcher only ever reads the fields above.
}

// TotalSockets flattens every linked group into one slice, used by the
// unlinked Sockets condition.
func (it Item) TotalSockets() SocketGroup {
	var total SocketGroup
	for _, g := range it.SocketGroups {
		total.R += g.R
		total.G += g.G
		total.B += g.B
		total.W += g.W
		total.A += g.A
		total.D += g.D
	}
	return total
}
