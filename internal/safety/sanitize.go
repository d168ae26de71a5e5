package safety

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// stegoRunes are zero-width and directional-override code points used to
// split keywords apart or reorder text so that pattern matching misses.
var stegoRunes = map[rune]bool{
	'\u200B': true, // zero width space
	'\u200C': true, // zero width non-joiner
	'\u200D': true, // zero width joiner
	'\u200E': true, // left-to-right mark
	'\u200F': true, // right-to-left mark
	'\u2060': true, // word joiner
	'\u2066': true, // left-to-right isolate
	'\u2067': true, // right-to-left isolate
	'\u2068': true, // first strong isolate
	'\u2069': true, // pop directional isolate
	'\uFEFF': true, // zero width no-break space (BOM)
}

// Sanitize applies NFKC normalization and strips steganographic code
// points. Invalid byte sequences are replaced with U+FFFD rather than
// rejected. Sanitize is idempotent.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, string(utf8.RuneError))
	}
	normalized := norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if stegoRunes[r] {
			continue
		}
		b.WriteRune(r)
	}

	// Stripping can expose combining pairs the first pass could not
	// compose (a zero-width joiner between a base letter and its accent
	// blocks composition), so normalize the stripped text again.
	return norm.NFKC.String(b.String())
}

// containsStego reports whether the text carries any of the code points
// Sanitize would strip. Used to flag evasion attempts retroactively.
func containsStego(text string) bool {
	for _, r := range text {
		if stegoRunes[r] {
			return true
		}
	}
	return false
}
