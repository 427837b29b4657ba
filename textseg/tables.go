package textseg

import "unicode"

// Grapheme break property tables (UAX #29, Unicode 15.0). Stdlib category
// tables are reused where they coincide with the UAX property; the rest are
// explicit range tables.

const (
	runeZWJ  = 0x200D
	runeZWNJ = 0x200C
)

// otherGraphemeExtend holds the Grapheme_Extend codepoints that are not in
// Mn or Me (spacing vowel signs that cling to the previous cluster, tag
// characters, halfwidth voicing marks).
var otherGraphemeExtend = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x09BE, 0x09BE, 1},
		{0x09D7, 0x09D7, 1},
		{0x0B3E, 0x0B3E, 1},
		{0x0B57, 0x0B57, 1},
		{0x0BBE, 0x0BBE, 1},
		{0x0BD7, 0x0BD7, 1},
		{0x0CC2, 0x0CC2, 1},
		{0x0CD5, 0x0CD6, 1},
		{0x0D3E, 0x0D3E, 1},
		{0x0D57, 0x0D57, 1},
		{0x0DCF, 0x0DCF, 1},
		{0x0DDF, 0x0DDF, 1},
		{0x1B35, 0x1B35, 1},
		{0x200C, 0x200C, 1},
		{0x302E, 0x302F, 1},
		{0xFF9E, 0xFF9F, 1},
	},
	R32: []unicode.Range32{
		{0x1133E, 0x1133E, 1},
		{0x11357, 0x11357, 1},
		{0x114B0, 0x114B0, 1},
		{0x114BD, 0x114BD, 1},
		{0x115AF, 0x115AF, 1},
		{0x11930, 0x11930, 1},
		{0x1D165, 0x1D165, 1},
		{0x1D16E, 0x1D172, 1},
		{0xE0020, 0xE007F, 1},
	},
}

// emojiModifier covers the skin tone modifiers, which extend a cluster but
// count as pictographic when standalone.
var emojiModifier = &unicode.RangeTable{
	R32: []unicode.Range32{
		{0x1F3FB, 0x1F3FF, 1},
	},
}

var prependTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x0600, 0x0605, 1},
		{0x06DD, 0x06DD, 1},
		{0x070F, 0x070F, 1},
		{0x0890, 0x0891, 1},
		{0x08E2, 0x08E2, 1},
		{0x0D4E, 0x0D4E, 1},
	},
	R32: []unicode.Range32{
		{0x110BD, 0x110BD, 1},
		{0x110CD, 0x110CD, 1},
		{0x111C2, 0x111C3, 1},
		{0x1193F, 0x1193F, 1},
		{0x11941, 0x11941, 1},
		{0x11A3A, 0x11A3A, 1},
		{0x11A84, 0x11A89, 1},
		{0x11D46, 0x11D46, 1},
		{0x11F02, 0x11F02, 1},
	},
}

// spacingMarkExclude lists Mc codepoints that UAX #29 pulls out of
// SpacingMark.
var spacingMarkExclude = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x102B, 0x102C, 1},
		{0x1038, 0x1038, 1},
		{0x1062, 0x1064, 1},
		{0x1067, 0x106D, 1},
		{0x1083, 0x1083, 1},
		{0x1087, 0x108C, 1},
		{0x108F, 0x108F, 1},
		{0x109A, 0x109C, 1},
		{0x1A61, 0x1A61, 1},
		{0x1A63, 0x1A64, 1},
		{0xAA7B, 0xAA7B, 1},
		{0xAA7D, 0xAA7D, 1},
	},
	R32: []unicode.Range32{
		{0x11720, 0x11721, 1},
	},
}

// extendedPictographic covers the Extended_Pictographic property. Reserved
// ranges inside the emoji blocks are included, matching the property data.
var extendedPictographic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x00A9, 0x00A9, 1},
		{0x00AE, 0x00AE, 1},
		{0x203C, 0x203C, 1},
		{0x2049, 0x2049, 1},
		{0x2122, 0x2122, 1},
		{0x2139, 0x2139, 1},
		{0x2194, 0x2199, 1},
		{0x21A9, 0x21AA, 1},
		{0x231A, 0x231B, 1},
		{0x2328, 0x2328, 1},
		{0x2388, 0x2388, 1},
		{0x23CF, 0x23CF, 1},
		{0x23E9, 0x23F3, 1},
		{0x23F8, 0x23FA, 1},
		{0x24C2, 0x24C2, 1},
		{0x25AA, 0x25AB, 1},
		{0x25B6, 0x25B6, 1},
		{0x25C0, 0x25C0, 1},
		{0x25FB, 0x25FE, 1},
		{0x2600, 0x2605, 1},
		{0x2607, 0x2612, 1},
		{0x2614, 0x2685, 1},
		{0x2690, 0x2705, 1},
		{0x2708, 0x2712, 1},
		{0x2714, 0x2714, 1},
		{0x2716, 0x2716, 1},
		{0x271D, 0x271D, 1},
		{0x2721, 0x2721, 1},
		{0x2728, 0x2728, 1},
		{0x2733, 0x2734, 1},
		{0x2744, 0x2744, 1},
		{0x2747, 0x2747, 1},
		{0x274C, 0x274C, 1},
		{0x274E, 0x274E, 1},
		{0x2753, 0x2755, 1},
		{0x2757, 0x2757, 1},
		{0x2763, 0x2767, 1},
		{0x2795, 0x2797, 1},
		{0x27A1, 0x27A1, 1},
		{0x27B0, 0x27B0, 1},
		{0x27BF, 0x27BF, 1},
		{0x2934, 0x2935, 1},
		{0x2B05, 0x2B07, 1},
		{0x2B1B, 0x2B1C, 1},
		{0x2B50, 0x2B50, 1},
		{0x2B55, 0x2B55, 1},
		{0x3030, 0x3030, 1},
		{0x303D, 0x303D, 1},
		{0x3297, 0x3297, 1},
		{0x3299, 0x3299, 1},
	},
	R32: []unicode.Range32{
		{0x1F000, 0x1F0FF, 1},
		{0x1F10D, 0x1F10F, 1},
		{0x1F12F, 0x1F12F, 1},
		{0x1F16C, 0x1F171, 1},
		{0x1F17E, 0x1F17F, 1},
		{0x1F18E, 0x1F18E, 1},
		{0x1F191, 0x1F19A, 1},
		{0x1F1AD, 0x1F1E5, 1},
		{0x1F201, 0x1F20F, 1},
		{0x1F21A, 0x1F21A, 1},
		{0x1F22F, 0x1F22F, 1},
		{0x1F232, 0x1F23A, 1},
		{0x1F23C, 0x1F23F, 1},
		{0x1F249, 0x1F3FA, 1},
		{0x1F400, 0x1F53D, 1},
		{0x1F546, 0x1F64F, 1},
		{0x1F680, 0x1F6FF, 1},
		{0x1F774, 0x1F77F, 1},
		{0x1F7D5, 0x1F7FF, 1},
		{0x1F80C, 0x1F80F, 1},
		{0x1F848, 0x1F84F, 1},
		{0x1F85A, 0x1F85F, 1},
		{0x1F888, 0x1F88F, 1},
		{0x1F8AE, 0x1F8FF, 1},
		{0x1F90C, 0x1F93A, 1},
		{0x1F93C, 0x1F945, 1},
		{0x1F947, 0x1FAFF, 1},
		{0x1FC00, 0x1FFFD, 1},
	},
}

// wideTable covers the East Asian Wide and Fullwidth ranges that are not
// already Extended_Pictographic: CJK Unified Ideographs (extensions A-G),
// kana, Hangul syllables, CJK compatibility ideographs and fullwidth forms.
var wideTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x1100, 0x115F, 1},
		{0x2E80, 0x303E, 1},
		{0x3041, 0x33FF, 1},
		{0x3400, 0x4DBF, 1},
		{0x4E00, 0x9FFF, 1},
		{0xA000, 0xA4CF, 1},
		{0xA960, 0xA97F, 1},
		{0xAC00, 0xD7A3, 1},
		{0xF900, 0xFAFF, 1},
		{0xFE10, 0xFE19, 1},
		{0xFE30, 0xFE6F, 1},
		{0xFF00, 0xFF60, 1},
		{0xFFE0, 0xFFE6, 1},
	},
	R32: []unicode.Range32{
		{0x16FE0, 0x16FE4, 1},
		{0x17000, 0x18D08, 1},
		{0x1B000, 0x1B2FB, 1},
		{0x20000, 0x2FA1F, 1},
		{0x30000, 0x3134A, 1},
	},
}

func isControl(r rune) bool {
	if r == '\r' || r == '\n' {
		return false // CR and LF have their own rules
	}
	if r == runeZWJ || r == runeZWNJ {
		return false
	}
	// Format characters that UAX #29 classes as Prepend or Extend
	// (prepended concatenation marks, tag characters) are not controls.
	if isPrepend(r) || unicode.Is(otherGraphemeExtend, r) {
		return false
	}
	return unicode.Is(unicode.Cc, r) || unicode.Is(unicode.Cf, r) ||
		unicode.Is(unicode.Zl, r) || unicode.Is(unicode.Zp, r)
}

func isExtend(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) ||
		unicode.Is(otherGraphemeExtend, r) || unicode.Is(emojiModifier, r)
}

func isSpacingMark(r rune) bool {
	return unicode.Is(unicode.Mc, r) && !unicode.Is(spacingMarkExclude, r)
}

func isPrepend(r rune) bool {
	return unicode.Is(prependTable, r)
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

func isExtendedPictographic(r rune) bool {
	return unicode.Is(extendedPictographic, r)
}

// Hangul syllable classes. L, V and T are jamo ranges; LV and LVT are
// computed from the precomposed syllable block.

func isHangulL(r rune) bool {
	return (r >= 0x1100 && r <= 0x115F) || (r >= 0xA960 && r <= 0xA97C)
}

func isHangulV(r rune) bool {
	return (r >= 0x1160 && r <= 0x11A7) || (r >= 0xD7B0 && r <= 0xD7C6)
}

func isHangulT(r rune) bool {
	return (r >= 0x11A8 && r <= 0x11FF) || (r >= 0xD7CB && r <= 0xD7FB)
}

func isHangulLV(r rune) bool {
	if r < 0xAC00 || r > 0xD7A3 {
		return false
	}
	return (r-0xAC00)%28 == 0
}

func isHangulLVT(r rune) bool {
	if r < 0xAC00 || r > 0xD7A3 {
		return false
	}
	return (r-0xAC00)%28 != 0
}
