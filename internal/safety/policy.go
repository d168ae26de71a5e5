package safety

// Policy maps a category to an enforcement action and the template used
// for the user-facing reply.
type Policy struct {
	Block    bool   `json:"block"`
	Template string `json:"template"`
}

// PolicyTable maps categories to policies. Operator-supplied tables
// override the built-in defaults per category; categories absent from
// the table keep the hard-coded rule.
type PolicyTable map[Category]Policy

// Template names used by the built-in policies.
const (
	TemplateRefuseGeneric   = "refuse_generic"
	TemplateRefusePrivacy   = "refuse_privacy"
	TemplateRefuseInjection = "refuse_injection"
	TemplateRefuseJailbreak = "refuse_jailbreak"
	TemplateRefuseHarm      = "refuse_harm"
	TemplateCrisisSupport   = "crisis_support"
	TemplatePolicyInfoSafe  = "policy_info_safe"
	TemplateUnicodeNotice   = "unicode_notice"
	TemplateAckPerf         = "ack_perf"
)

// defaultPolicyTable is the hard-coded fallback: hard-harm categories
// block, self-harm routes to crisis support, model-spec and unicode are
// answered with safe templates.
func defaultPolicyTable() PolicyTable {
	return PolicyTable{
		CategoryPrivacy:    {Block: true, Template: TemplateRefusePrivacy},
		CategoryInjection:  {Block: true, Template: TemplateRefuseInjection},
		CategoryCanary:     {Block: true, Template: TemplateRefuseGeneric},
		CategorySelfHarm:   {Block: false, Template: TemplateCrisisSupport},
		CategoryExtremism:  {Block: true, Template: TemplateRefuseHarm},
		CategoryViolence:   {Block: true, Template: TemplateRefuseHarm},
		CategoryIllegal:    {Block: true, Template: TemplateRefuseHarm},
		CategoryPerfStress: {Block: false, Template: TemplateAckPerf},
		CategoryModelSpec:  {Block: false, Template: TemplatePolicyInfoSafe},
		CategoryJailbreak:  {Block: true, Template: TemplateRefuseJailbreak},
		CategoryUnicode:    {Block: false, Template: TemplateUnicodeNotice},
	}
}

// policyFor returns the effective policy for a category. Unknown
// categories fall back to a blocking generic refusal so that a config
// hole can never produce an empty or unsafe reply.
func (c *engineConfig) policyFor(cat Category) Policy {
	if p, ok := c.policies[cat]; ok {
		return p
	}
	return Policy{Block: true, Template: TemplateRefuseGeneric}
}

// resolve maps the winning category to a Decision. Reason tags are
// machine-readable: "blocked:<cat>", "intervene:self-harm",
// "answer:policy-info-safe", "unicode-normalized", "allow:<cat>" or
// plain "allow" for clean input.
func (c *engineConfig) resolve(cat Category) Decision {
	if cat == CategoryNone {
		return Decision{Reason: "allow"}
	}

	pol := c.policyFor(cat)
	d := Decision{Blocked: pol.Block, Category: cat}

	switch {
	case pol.Block:
		d.Reason = "blocked:" + string(cat)
	case cat == CategorySelfHarm:
		d.Reason = "intervene:self-harm"
	case cat == CategoryModelSpec:
		d.Reason = "answer:policy-info-safe"
	case cat == CategoryUnicode:
		d.Reason = "unicode-normalized"
	default:
		d.Reason = "allow:" + string(cat)
	}
	return d
}
