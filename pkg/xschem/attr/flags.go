package attr

import "strings"

// Rect flag bits, cached on each rectangle and derived from its attribute
// string.
const (
	RectFlagGraph         = 1 << 0
	RectFlagUnlockedGraph = 1 << 1
	RectFlagEmbeddedImage = 1 << 10
	RectFlagImageUnscaled = 1 << 11
)

// RectFlags derives a Rect's cached flags bitmask from its attribute
// string, with this precedence:
//
//	"unscaled" substring => bits {10,11}
//	else "image"         => bit 10
//	else "unlocked"      => bits {0,1}
//	else "graph"         => bit 0
func RectFlags(s string) int {
	switch {
	case strings.Contains(s, "unscaled"):
		return RectFlagEmbeddedImage | RectFlagImageUnscaled
	case strings.Contains(s, "image"):
		return RectFlagEmbeddedImage
	case strings.Contains(s, "unlocked"):
		return RectFlagGraph | RectFlagUnlockedGraph
	case strings.Contains(s, "graph"):
		return RectFlagGraph
	default:
		return 0
	}
}

// Instance flag bits.
const (
	InstFlagHighlight = 1 << iota
	InstFlagHide
	InstFlagHideTexts
	InstFlagPinOrLabel
	InstFlagEmbedded
	InstFlagIgnoreSpice
	InstFlagIgnoreVerilog
	InstFlagIgnoreVHDL
	InstFlagIgnoreTedax
	InstFlagLVSIgnoreOpen
	InstFlagLVSIgnoreShort
)

// InstanceFlags derives an Instance's cached flags bitmask from its
// property string. Each bit is set when the corresponding boolean
// attribute token is present and not "0"/"false".
func InstanceFlags(s string) int {
	flags := 0
	set := func(key string, bit int) {
		if truthy(Get(s, key)) {
			flags |= bit
		}
	}
	set("highlight", InstFlagHighlight)
	set("hide", InstFlagHide)
	set("hide_texts", InstFlagHideTexts)
	set("pin_or_label", InstFlagPinOrLabel)
	set("embed", InstFlagEmbedded)
	set("spice_ignore", InstFlagIgnoreSpice)
	set("verilog_ignore", InstFlagIgnoreVerilog)
	set("vhdl_ignore", InstFlagIgnoreVHDL)
	set("tedax_ignore", InstFlagIgnoreTedax)
	set("lvs_ignore_open", InstFlagLVSIgnoreOpen)
	set("lvs_ignore_short", InstFlagLVSIgnoreShort)
	return flags
}

func truthy(v string) bool {
	return v != "" && v != "0" && v != "false"
}

// TextItem flag bits.
const (
	TextFlagBold = 1 << iota
	TextFlagItalic
	TextFlagOblique
	TextFlagHidden
	TextFlagFloater
)

// TextFlags derives a TextItem's cached flags bitmask from its attribute
// string.
func TextFlags(s string) int {
	flags := 0
	if truthy(Get(s, "bold")) {
		flags |= TextFlagBold
	}
	if truthy(Get(s, "italic")) {
		flags |= TextFlagItalic
	}
	if truthy(Get(s, "oblique")) {
		flags |= TextFlagOblique
	}
	if truthy(Get(s, "hide")) {
		flags |= TextFlagHidden
	}
	if truthy(Get(s, "floater")) {
		flags |= TextFlagFloater
	}
	return flags
}
