// Package lang implements the spirit-filter object model: the closed
// set of primitive object kinds, sequences, type promotion, and the
// compiled condition-set/action-set/block types shared by the resolver,
// evaluator, compiler, autogen expander, emitter, and item matcher.
package lang

import "github.com/filterspirit/filterspirit/sourcemap"

// Kind is the closed set of object kinds a primitive value can carry.
// Modeled as a tagged variant: Object below is the variant, Kind is
// its tag.
type Kind int

const (
	KindNone Kind = iota
	KindTemp
	KindBoolean
	KindInteger
	KindFractional
	KindSocketSpec
	KindRarity
	KindShape
	KindSuit
	KindInfluence
	KindShaperVoiceLine
	KindGemQualityType
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindTemp:
		return "Temp"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindFractional:
		return "Fractional"
	case KindSocketSpec:
		return "SocketSpec"
	case KindRarity:
		return "Rarity"
	case KindShape:
		return "Shape"
	case KindSuit:
		return "Suit"
	case KindInfluence:
		return "Influence"
	case KindShaperVoiceLine:
		return "ShaperVoiceLine"
	case KindGemQualityType:
		return "GemQualityType"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// SocketSpec is the payload of a KindSocketSpec value.
type SocketSpec struct {
	Count    *int // 1-6 if explicitly given, nil otherwise
	R, G, B, W, A, D uint8
}

// NonZeroFieldCount counts how many of R/G/B/W/A/D are non-zero.
func (s SocketSpec) NonZeroFieldCount() int {
	n := 0
	for _, v := range []uint8{s.R, s.G, s.B, s.W, s.A, s.D} {
		if v != 0 {
			n++
		}
	}
	return n
}

// LinkCount is the total number of colored/white sockets the spec
// describes (R+G+B+W), excluding the Shaper/Elder-only A/D markers.
func (s SocketSpec) LinkCount() int {
	return int(s.R) + int(s.G) + int(s.B) + int(s.W)
}

// Object is a single tagged value: a Kind plus its payload, plus the
// source range it came from for diagnostics.
type Object struct {
	Kind   Kind
	Origin sourcemap.Range

	Bool        bool
	Int         int32
	Frac        float64
	Socket      SocketSpec
	Rarity      Rarity
	Shape       Shape
	Suit        Suit
	Influence   Influence
	VoiceLine   ShaperVoiceLine
	GemQuality  GemQualityType
	Str         string
}

// Sequence is an ordered list of primitive Objects sharing one overall
// origin. A top-level const always binds a Sequence.
type Sequence struct {
	Origin sourcemap.Range
	Values []Object
}

// Len returns the number of primitives in the sequence.
func (s Sequence) Len() int { return len(s.Values) }
