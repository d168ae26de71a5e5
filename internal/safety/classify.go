package safety

import "strings"

// orderedDetectors builds the priority-ordered detector chain for a
// compiled configuration. Higher-severity categories must never be
// shadowed by a lower one, so the classifier walks this slice once and
// returns the first hit.
func orderedDetectors(canary string) []detector {
	return []detector{
		// A Luhn-valid card number is the highest-priority privacy hit
		// and overrides every other category.
		{CategoryPrivacy, func(st *scanState) bool {
			return containsPaymentNumber(st.lower)
		}},
		{CategoryInjection, func(st *scanState) bool {
			return containsAny(st.lower, injectionPhrases)
		}},
		// The canary marker is matched against the original, unsanitized
		// text: normalization must not be able to hide a leak.
		{CategoryCanary, func(st *scanState) bool {
			return canary != "" && strings.Contains(st.original, canary)
		}},
		{CategorySelfHarm, func(st *scanState) bool {
			return containsAny(st.lower, selfHarmPhrases)
		}},
		{CategoryExtremism, func(st *scanState) bool {
			return containsAny(st.lower, extremismPhrases)
		}},
		{CategoryViolence, func(st *scanState) bool {
			return containsAny(st.lower, violencePhrases)
		}},
		{CategoryIllegal, func(st *scanState) bool {
			return containsAny(st.lower, illegalPhrases)
		}},
		{CategoryPerfStress, func(st *scanState) bool {
			return containsAny(st.lower, perfStressPhrases)
		}},
		{CategoryPrivacy, matchKeywordPrivacy},
		{CategoryModelSpec, func(st *scanState) bool {
			return containsAny(st.lower, modelSpecPhrases)
		}},
		{CategoryJailbreak, func(st *scanState) bool {
			return containsAny(st.lower, jailbreakPhrases)
		}},
	}
}

// Intent patterns score full requests rather than bare keywords; they
// decide the low-priority group when no keyword detector fired.

var privacyIntentPhrases = []string{
	// en
	"extract personal data",
	"store personal data",
	"collect personal data",
	"share my personal",
	"give me his address",
	"give me her address",
	"find someone's phone",
	// vi
	"trích xuất thông tin cá nhân",
	"lưu thông tin cá nhân",
	"thu thập thông tin cá nhân",
	"tìm số điện thoại của",
	"tìm địa chỉ của",
}

var modelSpecIntentPhrases = []string{
	// en
	"what can you",
	"what cannot you",
	"what can't you",
	"what are you able to",
	"are you allowed to",
	"how were you trained",
	// vi
	"bạn có thể",
	"bạn không thể",
	"bạn được phép",
	"bạn bị cấm",
	"bạn được huấn luyện",
}

var jailbreakIntentPhrases = []string{
	// en
	"pretend",
	"ignore instructions",
	"ignore your instructions",
	"ignore your rules",
	"without restrictions",
	"no filter",
	// vi
	"giả vờ",
	"bỏ qua chỉ dẫn",
	"bỏ qua quy tắc",
	"không giới hạn",
	"không kiểm duyệt",
}

func countHits(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}

// semanticIntent scores request-shaped intent patterns for the three
// categories that plain keywords often miss. Ties resolve to the most
// adversarial intent: Jailbreak > ModelSpec > Privacy.
func semanticIntent(lower string) Category {
	scores := []struct {
		category Category
		score    int
	}{
		{CategoryJailbreak, countHits(lower, jailbreakIntentPhrases)},
		{CategoryModelSpec, countHits(lower, modelSpecIntentPhrases)},
		{CategoryPrivacy, countHits(lower, privacyIntentPhrases)},
	}

	best := CategoryNone
	bestScore := 0
	for _, s := range scores {
		if s.score > bestScore {
			best = s.category
			bestScore = s.score
		}
	}
	return best
}

// classify runs the full pipeline against the original text: sanitize,
// keyword detectors in priority order, semantic-intent scoring, and the
// Unicode-anomaly detector as a last resort. An input left empty by
// sanitization still flags as a Unicode anomaly when marks were
// stripped; a genuinely empty input is clean.
func (c *engineConfig) classify(st *scanState) Category {
	if st.sanitized == "" {
		if matchUnicodeAnomaly(st) {
			return CategoryUnicode
		}
		return CategoryNone
	}
	for _, d := range c.detectors {
		if d.match(st) {
			return d.category
		}
	}
	if cat := semanticIntent(st.lower); cat != CategoryNone {
		return cat
	}
	if matchUnicodeAnomaly(st) {
		return CategoryUnicode
	}
	return CategoryNone
}
