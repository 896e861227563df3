package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/filterspirit/filterspirit/lang"
)

// Emit renders blocks as native item-filter text. Blocks
// are written in order, separated by a single blank line; a nil or
// empty list renders as an empty string.
func Emit(blocks []lang.Block, cfg Config) string {
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		writeBlock(&b, block, cfg)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, block lang.Block, cfg Config) {
	fmt.Fprintf(b, "%s\n", cfg.label("Visibility", block.Visibility.String()))
	writeConditions(b, block.Conditions, cfg)
	writeActions(b, block.Actions, cfg)
}

func line(b *strings.Builder, cfg Config, format string, args ...interface{}) {
	b.WriteString(cfg.Indent)
	fmt.Fprintf(b, format, args...)
	b.WriteString("\n")
}

// keywordLine writes keyword's line using cfg's LineTemplates override
// when present (rendered via renderLine's field-templating), falling
// back to fallback.
func keywordLine(b *strings.Builder, cfg Config, keyword string, fields map[string]interface{}, fallback string) {
	tmpl, ok := cfg.LineTemplates[keyword]
	if !ok {
		line(b, cfg, "%s", fallback)
		return
	}
	fields["keyword"] = keyword
	line(b, cfg, "%s", renderLine(tmpl, fields))
}

func writeConditions(b *strings.Builder, cs lang.ConditionSet, cfg Config) {
	writeRange(b, cfg, "ItemLevel", cs.ItemLevel, formatInt)
	writeRange(b, cfg, "DropLevel", cs.DropLevel, formatInt)
	writeRange(b, cfg, "Quality", cs.Quality, formatInt)
	writeRarityRange(b, cfg, cs.RarityCond)
	writeSocketSpec(b, cfg, "Sockets", cs.Sockets)
	writeSocketSpec(b, cfg, "SocketGroup", cs.SocketGroup)
	writeRange(b, cfg, "Height", cs.Height, formatInt)
	writeRange(b, cfg, "Width", cs.Width, formatInt)
	writeRange(b, cfg, "StackSize", cs.StackSize, formatInt)
	writeRange(b, cfg, "GemLevel", cs.GemLevel, formatInt)
	writeRange(b, cfg, "MapTier", cs.MapTier, formatInt)

	writeStringList(b, cfg, "Class", cs.Class)
	writeStringList(b, cfg, "BaseType", cs.BaseType)
	writeStringList(b, cfg, "Prophecy", cs.Prophecy)
	writeStringList(b, cfg, "ArchnemesisMod", cs.ArchnemesisMod)
	writeRangedStringList(b, cfg, "HasExplicitMod", cs.HasExplicitMod)
	writeRangedStringList(b, cfg, "HasEnchantment", cs.HasEnchantment)

	writeBool(b, cfg, "Identified", cs.Identified)
	writeBool(b, cfg, "Corrupted", cs.Corrupted)
	writeBool(b, cfg, "Mirrored", cs.Mirrored)
	writeBool(b, cfg, "ElderItem", cs.ElderItem)
	writeBool(b, cfg, "ShaperItem", cs.ShaperItem)
	writeBool(b, cfg, "FracturedItem", cs.FracturedItem)
	writeBool(b, cfg, "SynthesisedItem", cs.SynthesisedItem)
	writeBool(b, cfg, "AnyEnchantment", cs.AnyEnchantment)
	writeBool(b, cfg, "ShapedMap", cs.ShapedMap)

	writeInfluence(b, cfg, cs.HasInfluence)
}

func formatInt(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// writeRange emits a range condition as `= N` when exact, otherwise one
// line per set bound using the bound's own operator.
func writeRange(b *strings.Builder, cfg Config, keyword string, r lang.RangeCondition, format func(float64) string) {
	if r.IsExact() {
		keywordLine(b, cfg, keyword, map[string]interface{}{"op": "=", "value": format(r.Lower.Value)},
			fmt.Sprintf("%s = %s", keyword, format(r.Lower.Value)))
		return
	}
	if r.Lower.Set {
		op := ">="
		if !r.Lower.Inclusive {
			op = ">"
		}
		keywordLine(b, cfg, keyword, map[string]interface{}{"op": op, "value": format(r.Lower.Value)},
			fmt.Sprintf("%s %s %s", keyword, op, format(r.Lower.Value)))
	}
	if r.Upper.Set {
		op := "<="
		if !r.Upper.Inclusive {
			op = "<"
		}
		keywordLine(b, cfg, keyword, map[string]interface{}{"op": op, "value": format(r.Upper.Value)},
			fmt.Sprintf("%s %s %s", keyword, op, format(r.Upper.Value)))
	}
}

func writeRarityRange(b *strings.Builder, cfg Config, r lang.RangeCondition) {
	if !r.Lower.Set && !r.Upper.Set {
		return
	}
	label := func(v lang.Rarity) string { return cfg.label("Rarity", v.String()) }
	if r.IsExact() {
		line(b, cfg, "Rarity = %s", label(r.Lower.Rarity))
		return
	}
	if r.Lower.Set {
		op := ">="
		if !r.Lower.Inclusive {
			op = ">"
		}
		line(b, cfg, "Rarity %s %s", op, label(r.Lower.Rarity))
	}
	if r.Upper.Set {
		op := "<="
		if !r.Upper.Inclusive {
			op = "<"
		}
		line(b, cfg, "Rarity %s %s", op, label(r.Upper.Rarity))
	}
}

// writeSocketSpec always prints the comparison operator, even for `==`.
func writeSocketSpec(b *strings.Builder, cfg Config, keyword string, c lang.SocketSpecCondition) {
	if !c.Set {
		return
	}
	specs := make([]string, len(c.Values))
	for i, s := range c.Values {
		specs[i] = formatSocketSpec(s)
	}
	line(b, cfg, "%s %s %s", keyword, c.Comparison.String(), strings.Join(specs, " "))
}

func formatSocketSpec(s lang.SocketSpec) string {
	var b strings.Builder
	if s.Count != nil {
		fmt.Fprintf(&b, "%d", *s.Count)
	}
	writeLetter(&b, 'R', s.R)
	writeLetter(&b, 'G', s.G)
	writeLetter(&b, 'B', s.B)
	writeLetter(&b, 'W', s.W)
	writeLetter(&b, 'A', s.A)
	writeLetter(&b, 'D', s.D)
	return b.String()
}

func writeLetter(b *strings.Builder, letter byte, count uint8) {
	for i := uint8(0); i < count; i++ {
		b.WriteByte(letter)
	}
}

// writeStringList prefixes `==` when exact-match is required; values
// are always double-quoted.
func writeStringList(b *strings.Builder, cfg Config, keyword string, c lang.StringListCondition) {
	if !c.Set {
		return
	}
	op := ""
	if c.ExactMatch {
		op = "== "
	}
	line(b, cfg, "%s %s%s", keyword, op, quoteAll(c.Strings))
}

// writeRangedStringList emits the count's integer suffix adjacent to
// the operator, e.g. `HasExplicitMod >=3 "of Haast"`.
func writeRangedStringList(b *strings.Builder, cfg Config, keyword string, c lang.RangedStringListCondition) {
	if !c.Strings.Set {
		return
	}
	prefix := keyword
	if c.Count.Lower.Set || c.Count.Upper.Set {
		if c.Count.IsExact() {
			prefix += " =" + formatInt(c.Count.Lower.Value)
		} else if c.Count.Lower.Set {
			op := ">="
			if !c.Count.Lower.Inclusive {
				op = ">"
			}
			prefix += " " + op + formatInt(c.Count.Lower.Value)
		} else {
			op := "<="
			if !c.Count.Upper.Inclusive {
				op = "<"
			}
			prefix += " " + op + formatInt(c.Count.Upper.Value)
		}
	}
	op := ""
	if c.Strings.ExactMatch {
		op = "== "
	}
	line(b, cfg, "%s %s%s", prefix, op, quoteAll(c.Strings.Strings))
}

func quoteAll(strs []string) string {
	quoted := make([]string, len(strs))
	for i, s := range strs {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, " ")
}

func writeBool(b *strings.Builder, cfg Config, keyword string, c lang.BoolCondition) {
	if !c.Set {
		return
	}
	value := "False"
	if c.Value {
		value = "True"
	}
	line(b, cfg, "%s %s", keyword, cfg.label("Bool", value))
}

// writeInfluence emits `HasInfluence None` when no flags are set.
func writeInfluence(b *strings.Builder, cfg Config, c lang.InfluenceCondition) {
	if !c.Set {
		return
	}
	op := ""
	if c.ExactMatch {
		op = "== "
	}
	if c.Flags == 0 {
		line(b, cfg, "HasInfluence %sNone", op)
		return
	}
	var names []string
	for _, f := range []lang.Influence{
		lang.InfluenceShaper, lang.InfluenceElder, lang.InfluenceCrusader,
		lang.InfluenceRedeemer, lang.InfluenceHunter, lang.InfluenceWarlord,
	} {
		if c.Flags&f != 0 {
			names = append(names, cfg.label("Influence", f.String()))
		}
	}
	line(b, cfg, "HasInfluence %s%s", op, strings.Join(names, " "))
}

func writeActions(b *strings.Builder, as lang.ActionSet, cfg Config) {
	writeColor(b, cfg, "SetTextColor", as.TextColor)
	writeColor(b, cfg, "SetBorderColor", as.BorderColor)
	writeColor(b, cfg, "SetBackgroundColor", as.BackgroundColor)
	if as.FontSize != nil {
		line(b, cfg, "SetFontSize %d", *as.FontSize)
	}
	writeAlertSound(b, cfg, as.Alert)
	writeMinimapIcon(b, cfg, as.Minimap)
	writePlayEffect(b, cfg, as.Effect)
	writeDropSound(b, cfg, as.DropSoundCfg)
}

func writeColor(b *strings.Builder, cfg Config, keyword string, c lang.Color) {
	if !c.Set {
		return
	}
	if c.A != nil {
		line(b, cfg, "%s %d %d %d %d", keyword, c.R, c.G, c.B, *c.A)
		return
	}
	line(b, cfg, "%s %d %d %d", keyword, c.R, c.G, c.B)
}

func writeAlertSound(b *strings.Builder, cfg Config, a lang.AlertSound) {
	if !a.Set {
		return
	}
	if a.IsCustom {
		keyword := "CustomAlertSound"
		if a.Optional {
			keyword = "CustomAlertSoundOptional"
		}
		line(b, cfg, "%s %s", keyword, strconv.Quote(a.Custom))
		return
	}
	sound := strconv.Itoa(a.SoundID)
	if a.HasVoiceLine {
		sound = cfg.label("ShaperVoiceLine", a.VoiceLine.String())
	}
	keyword := "PlayAlertSound"
	if a.Positional {
		keyword = "PlayAlertSoundPositional"
	}
	if a.Volume != nil {
		line(b, cfg, "%s %s %d", keyword, sound, *a.Volume)
		return
	}
	line(b, cfg, "%s %s", keyword, sound)
}

func writeMinimapIcon(b *strings.Builder, cfg Config, m lang.MinimapIcon) {
	if !m.Set {
		return
	}
	line(b, cfg, "MinimapIcon %d %s %s", m.Size, cfg.label("Suit", m.Suit.String()), cfg.label("Shape", m.Shape.String()))
}

func writePlayEffect(b *strings.Builder, cfg Config, e lang.PlayEffect) {
	if !e.Set {
		return
	}
	if e.IsTemp {
		line(b, cfg, "PlayEffect %s Temp", cfg.label("Suit", e.Suit.String()))
		return
	}
	line(b, cfg, "PlayEffect %s", cfg.label("Suit", e.Suit.String()))
}

func writeDropSound(b *strings.Builder, cfg Config, d lang.DropSound) {
	if !d.Set {
		return
	}
	if d.Enabled {
		line(b, cfg, "EnableDropSound")
		return
	}
	if d.IfNoCustom {
		line(b, cfg, "DisableDropSoundIfAlertSound")
		return
	}
	line(b, cfg, "DisableDropSound")
}
