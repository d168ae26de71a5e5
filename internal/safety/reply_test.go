package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeReplyNonEmptyForAllReachablePairs(t *testing.T) {
	e := newTestEngine(t)

	for _, cat := range Categories {
		for _, locale := range Locales {
			reply := e.SafeReply(cat, locale, ReplyContext{})
			assert.NotEmpty(t, reply, "category %q locale %q", cat, locale)
		}
	}
}

func TestSafeReplyDeterministic(t *testing.T) {
	e := newTestEngine(t)
	first := e.SafeReply(CategoryInjection, LocaleVI, ReplyContext{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.SafeReply(CategoryInjection, LocaleVI, ReplyContext{}))
	}
}

func TestSafeReplySubIntentVariant(t *testing.T) {
	e := newTestEngine(t)

	generic := e.SafeReply(CategoryJailbreak, LocaleEN, ReplyContext{})
	specific := e.SafeReply(CategoryJailbreak, LocaleEN, ReplyContext{Intent: IntentJailbreak})
	assert.NotEqual(t, generic, specific)

	// Unknown sub-intents fall back to the generic template text.
	fallback := e.SafeReply(CategoryJailbreak, LocaleEN, ReplyContext{Intent: "nonsense"})
	assert.Equal(t, generic, fallback)
}

func TestSafeReplyUnknownCategory(t *testing.T) {
	e := newTestEngine(t)
	reply := e.SafeReply(Category("made-up"), LocaleEN, ReplyContext{})
	assert.NotEmpty(t, reply)
}

func TestSafeReplyCustomTemplateOverride(t *testing.T) {
	e, err := New(Options{
		Templates: TemplateSet{
			TemplateRefuseInjection: {
				LocaleEN: {"custom refusal"},
				LocaleVI: {"từ chối tùy chỉnh"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "custom refusal", e.SafeReply(CategoryInjection, LocaleEN, ReplyContext{}))
	assert.Equal(t, "từ chối tùy chỉnh", e.SafeReply(CategoryInjection, LocaleVI, ReplyContext{}))
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		redactions []string
		want       string
	}{
		{"single occurrence", "leak TOKEN end", []string{"TOKEN"}, "leak [REDACTED] end"},
		{"multiple occurrences", "TOKEN and TOKEN", []string{"TOKEN"}, "[REDACTED] and [REDACTED]"},
		{"multiple redactions", "a B c D", []string{"B", "D"}, "a [REDACTED] c [REDACTED]"},
		{"no redactions", "untouched", nil, "untouched"},
		{"empty redaction ignored", "untouched", []string{""}, "untouched"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.text, tt.redactions))
		})
	}
}
