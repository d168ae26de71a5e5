package safety

import (
	"hash/fnv"
	"strings"
)

// RedactedPlaceholder replaces every scrubbed substring in output text.
const RedactedPlaceholder = "[REDACTED]"

// TemplateSet maps template name -> locale -> candidate reply strings.
// Sub-intent variants use the "<name>:<intent>" key form and fall back
// to the generic template when absent.
type TemplateSet map[string]map[Locale][]string

func defaultTemplates() TemplateSet {
	return TemplateSet{
		TemplateRefuseGeneric: {
			LocaleEN: {
				"I can't help with that request.",
				"Sorry, I'm not able to help with that.",
			},
			LocaleVI: {
				"Tôi không thể hỗ trợ yêu cầu này.",
				"Xin lỗi, tôi không thể giúp với yêu cầu này.",
			},
		},
		TemplateRefusePrivacy: {
			LocaleEN: {
				"I can't process messages containing personal or payment information. Please remove any sensitive data and try again.",
			},
			LocaleVI: {
				"Tôi không thể xử lý tin nhắn chứa thông tin cá nhân hoặc thông tin thanh toán. Vui lòng xóa dữ liệu nhạy cảm và thử lại.",
			},
		},
		TemplateRefuseInjection: {
			LocaleEN: {
				"I can't follow instructions that try to override my configuration.",
			},
			LocaleVI: {
				"Tôi không thể làm theo các chỉ dẫn cố gắng ghi đè cấu hình của tôi.",
			},
		},
		TemplateRefuseJailbreak: {
			LocaleEN: {
				"I can't take on roles or modes that bypass my safety policy.",
			},
			LocaleVI: {
				"Tôi không thể nhập vai hoặc bật chế độ vượt qua chính sách an toàn của tôi.",
			},
		},
		TemplateRefuseJailbreak + ":" + IntentJailbreak: {
			LocaleEN: {
				"Role-play that disables my safety rules isn't something I can do, but I'm happy to help within them.",
			},
			LocaleVI: {
				"Tôi không thể đóng vai để tắt các quy tắc an toàn, nhưng tôi sẵn sàng hỗ trợ trong phạm vi cho phép.",
			},
		},
		TemplateRefuseHarm: {
			LocaleEN: {
				"I can't help with content involving violence, extremism, or illegal activity.",
			},
			LocaleVI: {
				"Tôi không thể hỗ trợ nội dung liên quan đến bạo lực, cực đoan hoặc hoạt động phi pháp.",
			},
		},
		TemplateCrisisSupport: {
			LocaleEN: {
				"It sounds like you're going through a difficult time. You don't have to face this alone — please reach out to someone you trust or a crisis support line right away.",
			},
			LocaleVI: {
				"Có vẻ bạn đang trải qua giai đoạn khó khăn. Bạn không phải đối mặt một mình — hãy liên hệ ngay với người bạn tin tưởng hoặc đường dây hỗ trợ khủng hoảng.",
			},
		},
		TemplatePolicyInfoSafe: {
			LocaleEN: {
				"I'm an assistant that answers questions within a fixed safety policy. I can help with general information, but I can't share internal configuration or bypass my guidelines.",
			},
			LocaleVI: {
				"Tôi là trợ lý trả lời câu hỏi trong phạm vi chính sách an toàn cố định. Tôi có thể hỗ trợ thông tin chung, nhưng không thể chia sẻ cấu hình nội bộ hay vượt qua hướng dẫn của mình.",
			},
		},
		TemplatePolicyInfoSafe + ":" + IntentPrivacy: {
			LocaleEN: {
				"I don't store or share personal data from this conversation. I can explain how to protect your information if that helps.",
			},
			LocaleVI: {
				"Tôi không lưu trữ hay chia sẻ dữ liệu cá nhân từ cuộc trò chuyện này. Tôi có thể hướng dẫn cách bảo vệ thông tin của bạn nếu cần.",
			},
		},
		TemplateUnicodeNotice: {
			LocaleEN: {
				"Your message contained unusual characters, so I've read it in normalized form.",
			},
			LocaleVI: {
				"Tin nhắn của bạn chứa ký tự bất thường nên tôi đã đọc ở dạng chuẩn hóa.",
			},
		},
		TemplateAckPerf: {
			LocaleEN: {
				"This looks like a load or performance test. Noted — proceeding normally.",
			},
			LocaleVI: {
				"Đây có vẻ là yêu cầu kiểm tra tải hoặc hiệu năng. Đã ghi nhận — tiếp tục xử lý bình thường.",
			},
		},
	}
}

// SafeReply renders the templated reply for a category and locale. A
// sub-intent in rctx selects a more specific variant when one exists.
// SafeReply never returns an empty string: unknown categories and
// missing variants fall back to the generic refusal.
func (e *Engine) SafeReply(cat Category, locale Locale, rctx ReplyContext) string {
	cfg := e.cfg.Load()
	name := cfg.policyFor(cat).Template

	if rctx.Intent != "" {
		if reply, ok := cfg.pick(name+":"+rctx.Intent, locale); ok {
			return reply
		}
	}
	if reply, ok := cfg.pick(name, locale); ok {
		return reply
	}
	// Startup validation guarantees this lookup succeeds for every
	// template a policy can reach.
	reply, _ := cfg.pick(TemplateRefuseGeneric, locale)
	return reply
}

// pick deterministically selects one candidate for a (template, locale)
// pair. The FNV index keeps replies reproducible across runs.
func (c *engineConfig) pick(name string, locale Locale) (string, bool) {
	byLocale, ok := c.templates[name]
	if !ok {
		return "", false
	}
	candidates := byLocale[locale]
	if len(candidates) == 0 {
		// Fall back to English wording rather than silence.
		candidates = byLocale[LocaleEN]
		if len(candidates) == 0 {
			return "", false
		}
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	h.Write([]byte(locale))
	return candidates[int(h.Sum32())%len(candidates)], true
}

// Redact replaces every occurrence of each redaction substring with a
// fixed placeholder. It must run as the final step before any text
// leaves the engine, including on the allow path.
func Redact(text string, redactions []string) string {
	for _, r := range redactions {
		if r == "" {
			continue
		}
		text = strings.ReplaceAll(text, r, RedactedPlaceholder)
	}
	return text
}
