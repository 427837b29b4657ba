package textseg

import (
	"unicode"
	"unicode/utf8"
)

// RuneWidth returns the number of terminal cells r occupies when drawn
// standalone: 0, 1 or 2.
//
// Extended_Pictographic and the skin-tone modifiers are checked before the
// zero-width classes so that a standalone skin-tone modifier renders as a
// wide emoji; inside a cluster the modifier contributes nothing because
// only the base codepoint is measured (see StringWidth).
func RuneWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if isExtendedPictographic(r) || unicode.Is(emojiModifier, r) {
		return 2
	}
	if r < 0x20 || (r >= 0x7F && r < 0xA0) {
		return 0
	}
	if r == runeZWJ || r == runeZWNJ {
		return 0
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r) {
		return 0
	}
	if unicode.Is(unicode.Cf, r) {
		return 0
	}
	if unicode.Is(wideTable, r) {
		return 2
	}
	return 1
}

// StringWidth returns the display width of s in terminal cells, measuring
// one cell count per grapheme cluster (the base codepoint's width).
func StringWidth(s string) int {
	width := 0
	for len(s) > 0 {
		base, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		width += RuneWidth(base)

		st := StartCluster(base)
		for len(s) > 0 {
			r, size := utf8.DecodeRuneInString(s)
			if !st.Extend(r) {
				break
			}
			s = s[size:]
		}
	}
	return width
}
