package ast

// Keyword tables drawn from the official filter language plus the DSL's
// own additions, grounded on
// original_source/src/lang/keywords.hpp's condition/action name lists.

// ConditionKeywords is the closed set of condition names a rule_block's
// guard clauses may use.
var ConditionKeywords = map[string]bool{
	"ItemLevel": true, "DropLevel": true, "Quality": true, "Rarity": true,
	"Sockets": true, "SocketGroup": true, "Height": true, "Width": true,
	"StackSize": true, "GemLevel": true, "MapTier": true,
	"Class": true, "BaseType": true, "Prophecy": true, "ArchnemesisMod": true,
	"HasExplicitMod": true, "HasEnchantment": true,
	"Identified": true, "Corrupted": true, "Mirrored": true,
	"ElderItem": true, "ShaperItem": true, "FracturedItem": true,
	"SynthesisedItem": true, "AnyEnchantment": true, "ShapedMap": true,
	"HasInfluence": true,
}

// ActionKeywords is the closed set of action statement names.
var ActionKeywords = map[string]bool{
	"SetTextColor": true, "SetBorderColor": true, "SetBackgroundColor": true,
	"SetFontSize": true,
	"SetAlertSound": true, "PlayAlertSound": true, "PlayAlertSoundPositional": true,
	"CustomAlertSound": true, "CustomAlertSoundOptional": true,
	"MinimapIcon": true, "PlayEffect": true,
	"EnableDropSound": true, "DisableDropSound": true,
	"DisableDropSoundIfAlertSound": true,
}

// VisibilityKeywords is the closed set of visibility statement names.
var VisibilityKeywords = map[string]bool{
	"Show": true, "Hide": true, "Minimal": true, "ShowDiscard": true, "HideDiscard": true,
}

// DSLKeywords are the spirit-filter DSL's own additions on top of the
// native filter language.
var DSLKeywords = map[string]bool{
	"Set": true, "Autogen": true, "Price": true,
}

// BooleanLiterals are the filter language's boolean literal keywords.
var BooleanLiterals = map[string]bool{"True": true, "False": true}
