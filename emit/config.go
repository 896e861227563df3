// Package emit implements the emitter: it
// renders a list of compiled item-filter blocks as native filter text,
// and a DedupingWriter variant that drops byte-identical blocks a
// spirit filter's autogen price tiers can produce.
package emit

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilePath is the default per-user emitter config path.
var DefaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/filterspirit/emit.yaml")

// Config customizes the emitter's line formatting.
type Config struct {
	// Indent is the whitespace written before every condition/action
	// line (the game client accepts either tabs or spaces).
	Indent string `yaml:"indent"`
	// EnumLabels overrides an enum keyword's printed spelling, keyed
	// "Suit.Red" / "Shape.Kite" / "Rarity.Unique" etc. — useful for
	// filters targeting clients with renamed labels.
	EnumLabels map[string]string `yaml:"enum_labels"`
	// LineTemplates overrides the printed line of a numeric range
	// condition (ItemLevel, DropLevel, Quality, Height, Width,
	// StackSize, GemLevel, MapTier), keyed by the keyword, as a
	// `{{field}}`-templated string rendered with renderLine. Range
	// keywords not listed here, and every other condition, use the
	// built-in layout.
	LineTemplates map[string]string `yaml:"line_templates"`
}

// Default returns the emitter's conservative default: a single tab of
// indentation and no relabeling.
func Default() Config {
	return Config{Indent: "\t"}
}

// NewConfig reads an emit Config from filePath.
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateSample writes a sample config with default values to filePath.
func GenerateSample(filePath string) error {
	bin, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

func (c Config) label(enum, value string) string {
	if c.EnumLabels == nil {
		return value
	}
	if override, ok := c.EnumLabels[enum+"."+value]; ok {
		return override
	}
	return value
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}
