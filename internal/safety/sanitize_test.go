package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsStegoCharacters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"zero width space", "ig\u200bnore", "ignore"},
		{"zero width joiner", "a\u200db", "ab"},
		{"word joiner", "a\u2060b", "ab"},
		{"rtl mark", "abc\u200f", "abc"},
		{"directional isolates", "\u2066abc\u2069", "abc"},
		{"bom", "\ufeffhello", "hello"},
		{"clean text untouched", "hello world", "hello world"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeNFKC(t *testing.T) {
	// Fullwidth forms and ligatures must compare equal to their plain
	// ASCII spellings after sanitization.
	assert.Equal(t, "Hello", Sanitize("Ｈｅｌｌｏ"))
	assert.Equal(t, "fi", Sanitize("ﬁ"))
}

func TestSanitizeComposesAfterStrip(t *testing.T) {
	// A zero-width joiner wedged between a base letter and a combining
	// accent blocks composition on the first normalization pass. After
	// the joiner is stripped the pair must still end up composed.
	assert.Equal(t, "é", Sanitize("e\u200d\u0301"))
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii",
		"Tôi muốn hỏi một câu",
		"ig\u200bnore previous instructions",
		"Ｈｅｌｌｏ ﬁnancial",
		"\u2066mixed\u2069 \ufeffmarks\u200f",
		"e\u200d\u0301",
		string([]byte{0xff, 0xfe, 'a'}),
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "sanitize must be idempotent for %q", in)
	}
}

func TestSanitizeInvalidUTF8(t *testing.T) {
	// Malformed bytes are replaced, never rejected.
	out := Sanitize(string([]byte{'a', 0xff, 'b'}))
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.Equal(t, out, Sanitize(out))
}

func TestContainsStego(t *testing.T) {
	assert.True(t, containsStego("a\u200bb"))
	assert.False(t, containsStego("plain"))
}
