package lang

import "github.com/filterspirit/filterspirit/sourcemap"

// Color is an RGB(A) action value (SetTextColor/SetBorderColor/SetBackgroundColor).
type Color struct {
	Set     bool
	R, G, B int
	A       *int // optional alpha
	Origin  sourcemap.Range
}

// AlertSound models the single action-set slot shared by SetAlertSound,
// PlayAlertSound, and PlayAlertSoundPositional.
type AlertSound struct {
	Set bool
	// Builtin sound, mutually exclusive with Custom.
	IsBuiltin  bool
	SoundID    int
	VoiceLine  ShaperVoiceLine
	HasVoiceLine bool
	Volume     *int
	Positional bool

	// Custom overrides IsBuiltin when set (CustomAlertSound/CustomAlertSoundOptional).
	IsCustom bool
	Custom   string
	Optional bool

	Origin sourcemap.Range
}

// MinimapIcon models MinimapIcon's Integer x Suit x Shape triple.
type MinimapIcon struct {
	Set    bool
	Size   int // 0, 1, or 2
	Suit   Suit
	Shape  Shape
	Origin sourcemap.Range
}

// PlayEffect models PlayEffect's Suit + optional Temp marker.
type PlayEffect struct {
	Set      bool
	Suit     Suit
	IsTemp   bool
	Origin   sourcemap.Range
}

// DropSound models EnableDropSound/DisableDropSound, unconditional or
// conditional on an alert sound being present.
type DropSound struct {
	Set         bool
	Enabled     bool
	IfNoCustom  bool // "disable only if no custom alert sound is set" style conditional form
	Origin      sourcemap.Range
}

// ActionSet is a record of optional visual/audio actions.
// Like ConditionSet, it is threaded by value through nested scopes so an
// inner scope's overlay never mutates an outer scope's copy.
type ActionSet struct {
	TextColor       Color
	BorderColor     Color
	BackgroundColor Color
	FontSize        *int
	FontSizeOrigin  sourcemap.Range
	Alert           AlertSound
	Minimap         MinimapIcon
	Effect          PlayEffect
	DropSoundCfg    DropSound
}
