// Package safety implements a deterministic, rule-based content-safety
// engine: it normalizes a raw user text, classifies it into at most one
// sensitive category, resolves the category to an enforcement action and
// renders a locale-aware templated reply with sensitive tokens redacted.
//
// The engine is stateless per call; all shared configuration is immutable
// and swapped atomically on reload, so it is safe for concurrent use.
package safety

// Category is a closed set of content categories with a fixed priority
// order. The empty value means the input is clean.
type Category string

const (
	CategoryNone       Category = ""
	CategoryPrivacy    Category = "privacy"
	CategoryInjection  Category = "injection"
	CategoryCanary     Category = "canary"
	CategorySelfHarm   Category = "self-harm"
	CategoryExtremism  Category = "extremism"
	CategoryViolence   Category = "violence"
	CategoryIllegal    Category = "illegal"
	CategoryPerfStress Category = "perf-stress"
	CategoryModelSpec  Category = "model-spec"
	CategoryJailbreak  Category = "jailbreak"
	CategoryUnicode    Category = "unicode"
)

// Categories lists every category the classifier can return, highest
// priority first.
var Categories = []Category{
	CategoryPrivacy,
	CategoryInjection,
	CategoryCanary,
	CategorySelfHarm,
	CategoryExtremism,
	CategoryViolence,
	CategoryIllegal,
	CategoryPerfStress,
	CategoryModelSpec,
	CategoryJailbreak,
	CategoryUnicode,
}

// Locale selects the response language. Classification never depends on it.
type Locale string

const (
	LocaleVI Locale = "vi"
	LocaleEN Locale = "en"
)

// Locales lists every locale a reply can be rendered in.
var Locales = []Locale{LocaleVI, LocaleEN}

// Decision is the engine's verdict for one request. It is constructed
// fresh per call and never mutated afterward.
type Decision struct {
	Blocked    bool     `json:"blocked"`
	Category   Category `json:"category,omitempty"`
	Reason     string   `json:"reason"`
	Redactions []string `json:"redactions,omitempty"`
}

// ReplyContext carries an optional detected sub-intent that lets the
// response generator pick a more specific phrasing variant.
type ReplyContext struct {
	Intent string `json:"intent,omitempty"`
}

// Sub-intents recognized by the response generator.
const (
	IntentPrivacy   = "privacy"
	IntentJailbreak = "jailbreak"
)
