package paginate

import (
	"strings"
	"unicode"
)

// Core PDF fonts only carry glyph widths for single-byte code points, so
// text is folded to Latin-1 before it is measured or drawn.
var latin1Replacer = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201a", "'", "\u2032", "'",
	"\u201c", `"`, "\u201d", `"`, "\u201e", `"`, "\u2033", `"`,
	"\u2013", "-", "\u2014", "-", "\u2212", "-",
	"\u2026", "...",
	"\u2022", "-",
	"\u200b", "",
	"\ufeff", "",
)

func toLatin1(s string) string {
	s = latin1Replacer.Replace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r < 0x20, r == 0x7f:
			return ' '
		case r >= 0x80 && r < 0xa0:
			return -1
		case r > 0xff:
			if unicode.IsSpace(r) {
				return ' '
			}
			return '?'
		}
		return r
	}, s)
}
