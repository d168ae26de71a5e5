package safety

import (
	"regexp"
	"strings"
	"unicode"
)

// scanState carries the per-request views of the input every detector
// works from. Detectors are pure: they read the state, never mutate it.
type scanState struct {
	original  string // raw input as received
	sanitized string // NFKC-normalized, stego-stripped
	lower     string // sanitized, lowercased; most patterns match here
	hadStego  bool   // original contained zero-width/RTL marks
}

func newScanState(original string) *scanState {
	sanitized := Sanitize(original)
	return &scanState{
		original:  original,
		sanitized: sanitized,
		lower:     strings.ToLower(sanitized),
		hadStego:  containsStego(original),
	}
}

// detector pairs a category with its match function. The classifier walks
// an ordered slice of these and short-circuits on the first hit, which
// makes the priority order an explicit, auditable data structure.
type detector struct {
	category Category
	match    func(st *scanState) bool
}

// Keyword sets are bilingual: every category carries equivalent
// Vietnamese and English coverage.

var injectionPhrases = []string{
	// en
	"ignore previous instructions",
	"ignore all previous",
	"disregard your instructions",
	"forget your instructions",
	"reveal system prompt",
	"reveal the system prompt",
	"reveal your system",
	"show me your prompt",
	"debug mode",
	"override",
	"bypass",
	// vi
	"bỏ qua hướng dẫn",
	"bỏ qua các hướng dẫn trước",
	"quên các hướng dẫn",
	"tiết lộ system prompt",
	"tiết lộ lời nhắc hệ thống",
	"chế độ debug",
	"vượt qua bộ lọc",
	"ghi đè hệ thống",
}

var selfHarmPhrases = []string{
	// en
	"kill myself",
	"suicide",
	"end my life",
	"hurt myself",
	"self-harm",
	"self harm",
	"want to die",
	"cut myself",
	// vi
	"tự tử",
	"tự sát",
	"muốn chết",
	"kết thúc cuộc đời",
	"tự làm hại",
	"tự làm đau",
	"không muốn sống",
}

var extremismPhrases = []string{
	// en
	"terrorism",
	"terrorist",
	"radicalization",
	"radicalisation",
	"extremist",
	"join isis",
	"holy war",
	// vi
	"khủng bố",
	"cực đoan",
	"thánh chiến",
	"chiêu mộ chiến binh",
}

var violencePhrases = []string{
	// en
	"how to kill",
	"how to harm",
	"make a bomb",
	"make explosives",
	"build a weapon",
	"attack someone",
	"assault",
	"shoot up",
	// vi
	"giết người",
	"cách giết",
	"chế tạo bom",
	"làm bom",
	"đánh bom",
	"chế tạo vũ khí",
	"hành hung",
	"tấn công người",
}

var illegalPhrases = []string{
	// en
	"how to hack",
	"hack into",
	"make drugs",
	"cook meth",
	"synthesize drugs",
	"counterfeit money",
	"how to steal",
	"launder money",
	"card fraud",
	// vi
	"chế ma túy",
	"điều chế ma túy",
	"buôn ma túy",
	"hack vào",
	"xâm nhập hệ thống",
	"trộm cắp",
	"lừa đảo chiếm đoạt",
	"rửa tiền",
	"làm tiền giả",
}

var perfStressPhrases = []string{
	// en
	"stress test",
	"load test",
	"benchmark",
	"requests per second",
	"concurrent users",
	"performance test",
	"spam requests",
	// vi
	"kiểm tra tải",
	"kiểm tra hiệu năng",
	"chịu tải",
	"đo hiệu năng",
}

var privacyPhrases = []string{
	// en
	"id number",
	"identity card",
	"social security",
	"home address",
	"bank account",
	"account number",
	"credit card number",
	"card number",
	"passport number",
	"date of birth",
	// vi
	"số cmnd",
	"số chứng minh",
	"căn cước công dân",
	"số cccd",
	"địa chỉ nhà",
	"số tài khoản",
	"tài khoản ngân hàng",
	"số hộ chiếu",
	"ngày sinh của",
}

// Structural PII patterns, matched against the lowercased sanitized text.
var (
	emailPattern = regexp.MustCompile(`[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	// Vietnamese phone numbers: +84 or leading-zero trunk prefix. The
	// leading (^|\D) keeps a zero inside a longer digit run from
	// matching as a phone number.
	phonePattern = regexp.MustCompile(`(^|\D)(\+84|0)\d{9,10}\b`)
	// 12-digit CCCD national ID and the legacy 9-digit CMND format.
	nationalIDPattern = regexp.MustCompile(`\b\d{12}\b`)
	legacyIDPattern   = regexp.MustCompile(`\b\d{9}\b`)
)

var modelSpecPhrases = []string{
	// en
	"what can you do",
	"what can't you do",
	"what you cannot do",
	"your capabilities",
	"capability",
	"your limitations",
	"your behavior",
	"your behaviour",
	"ai safety",
	"what are your instructions",
	"model spec",
	// vi
	"bạn có thể làm gì",
	"bạn không thể làm gì",
	"khả năng của bạn",
	"giới hạn của bạn",
	"hành vi của bạn",
	"an toàn ai",
	"hướng dẫn của bạn là gì",
}

var jailbreakPhrases = []string{
	// en
	"roleplay",
	"role-play",
	"role play as",
	"act as",
	"pretend you are",
	"pretend to be",
	"developer mode",
	"you are now",
	"dan mode",
	"do anything now",
	"jailbreak",
	// vi
	"đóng vai",
	"hãy đóng vai",
	"giả vờ là",
	"giả vờ rằng",
	"chế độ nhà phát triển",
	"bây giờ bạn là",
	"bẻ khóa",
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func matchKeywordPrivacy(st *scanState) bool {
	if containsAny(st.lower, privacyPhrases) {
		return true
	}
	if emailPattern.MatchString(st.lower) || phonePattern.MatchString(st.lower) {
		return true
	}
	if nationalIDPattern.MatchString(st.lower) || legacyIDPattern.MatchString(st.lower) {
		return true
	}
	// A 13-19 digit run that failed the Luhn check upstream is still a
	// card-shaped leak, just lower confidence.
	return containsDigitRun(st.lower)
}

// matchUnicodeAnomaly inspects both the original and the sanitized text:
// evasion leaves traces either as stripped stego marks or as script
// mixing that survives normalization.
func matchUnicodeAnomaly(st *scanState) bool {
	if st.hadStego {
		return true
	}
	return hasMixedScript(st.sanitized) || hasEmoji(st.sanitized)
}

func hasMixedScript(text string) bool {
	var latin, confusable bool
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Latin, r):
			latin = true
		case unicode.Is(unicode.Cyrillic, r), unicode.Is(unicode.Greek, r):
			confusable = true
		}
		if latin && confusable {
			return true
		}
	}
	return false
}

func hasEmoji(text string) bool {
	for _, r := range text {
		if (r >= 0x1F000 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF) {
			return true
		}
	}
	return false
}
