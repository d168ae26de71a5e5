package safety

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// DefaultCanary is the compiled-in prompt-leak marker. Deployments
// override it through Options.
const DefaultCanary = "GUARD-CANARY-7f3d"

// Options configures an Engine. Zero values fall back to the built-in
// policy table, templates and canary.
type Options struct {
	// Policies overrides the enforcement rule per category. Categories
	// absent here keep the hard-coded default.
	Policies PolicyTable
	// Templates adds or replaces reply templates. Entries merge over the
	// built-in set per (name, locale).
	Templates TemplateSet
	// Canary is the secret leak marker scrubbed from all output.
	Canary string
}

// engineConfig is one immutable, fully-validated configuration
// generation. The engine swaps whole generations, never mutates one.
type engineConfig struct {
	policies  PolicyTable
	templates TemplateSet
	canary    string
	detectors []detector
}

// Engine classifies text and enforces the configured policy. It is
// stateless per call and safe for concurrent use; Reload swaps the
// configuration under a single atomic pointer.
type Engine struct {
	cfg atomic.Pointer[engineConfig]
}

// New builds an Engine, failing fast on configuration holes: every
// template reachable through the policy table must render a non-empty
// reply in every locale.
func New(opts Options) (*Engine, error) {
	cfg, err := compile(opts)
	if err != nil {
		return nil, err
	}
	e := &Engine{}
	e.cfg.Store(cfg)
	return e, nil
}

// Reload validates opts and atomically swaps the active configuration.
// In-flight requests keep the generation they started with; a bad config
// is rejected whole and the old one stays in service.
func (e *Engine) Reload(opts Options) error {
	cfg, err := compile(opts)
	if err != nil {
		return fmt.Errorf("reload rejected: %w", err)
	}
	e.cfg.Store(cfg)
	return nil
}

// Canary returns the active leak marker. Exposed so callers can seed
// test traffic.
func (e *Engine) Canary() string {
	return e.cfg.Load().canary
}

// ApplyPolicies classifies prompt and returns the enforcement verdict.
// It never fails: every input, including empty or malformed text,
// resolves to a Decision.
func (e *Engine) ApplyPolicies(prompt string) Decision {
	cfg := e.cfg.Load()
	st := newScanState(prompt)

	d := cfg.resolve(cfg.classify(st))

	// Redactions are independent of the winning category: the canary
	// must be scrubbed from downstream output even when a higher
	// priority category won the classification.
	if cfg.canary != "" && strings.Contains(st.original, cfg.canary) {
		d.Redactions = append(d.Redactions, cfg.canary)
	}
	return d
}

func compile(opts Options) (*engineConfig, error) {
	canary := opts.Canary
	if canary == "" {
		canary = DefaultCanary
	}

	policies := defaultPolicyTable()
	for cat, pol := range opts.Policies {
		if pol.Template == "" {
			return nil, fmt.Errorf("policy for %q has no template", cat)
		}
		policies[cat] = pol
	}

	templates := defaultTemplates()
	for name, byLocale := range opts.Templates {
		merged, ok := templates[name]
		if !ok {
			merged = make(map[Locale][]string, len(byLocale))
			templates[name] = merged
		}
		for locale, candidates := range byLocale {
			merged[locale] = candidates
		}
	}

	cfg := &engineConfig{
		policies:  policies,
		templates: templates,
		canary:    canary,
		detectors: orderedDetectors(canary),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that every (template, locale) pair reachable through
// the policy table has at least one non-empty candidate. A table that
// could produce an empty reply is a fatal startup error.
func (c *engineConfig) validate() error {
	reachable := map[string]bool{TemplateRefuseGeneric: true}
	for _, pol := range c.policies {
		reachable[pol.Template] = true
	}

	for name := range reachable {
		byLocale, ok := c.templates[name]
		if !ok {
			return fmt.Errorf("template %q referenced by policy table is not defined", name)
		}
		for _, locale := range Locales {
			candidates := byLocale[locale]
			if len(candidates) == 0 {
				return fmt.Errorf("template %q has no candidates for locale %q", name, locale)
			}
			for i, cand := range candidates {
				if cand == "" {
					return fmt.Errorf("template %q locale %q candidate %d is empty", name, locale, i)
				}
			}
		}
	}
	return nil
}
