package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phamlt/guardrail/internal/cache"
	"github.com/phamlt/guardrail/internal/queue"
	"github.com/phamlt/guardrail/internal/safety"
)

// GuardHandler exposes the safety engine over HTTP. Redis and the audit
// queue are optional: classification works without either.
type GuardHandler struct {
	engine   *safety.Engine
	verdicts *cache.VerdictCache
	queue    *queue.Client
}

func NewGuardHandler(engine *safety.Engine, verdicts *cache.VerdictCache, qc *queue.Client) *GuardHandler {
	return &GuardHandler{engine: engine, verdicts: verdicts, queue: qc}
}

type checkRequest struct {
	Text string `json:"text"`
}

type checkResponse struct {
	Decision safety.Decision `json:"decision"`
	Locale   safety.Locale   `json:"locale"`
	Reply    string          `json:"reply"`
}

// Check classifies the text, resolves the policy and returns the
// redacted templated reply alongside the verdict.
func (h *GuardHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	start := time.Now()
	decision, cached := h.decide(r.Context(), req.Text)
	locale := safety.DetectLocale(req.Text)

	reply := safety.Redact(
		h.engine.SafeReply(decision.Category, locale, safety.ReplyContext{}),
		decision.Redactions,
	)

	if !cached {
		h.enqueueAudit(decision, locale, time.Since(start))
	}

	writeJSON(w, http.StatusOK, checkResponse{
		Decision: decision,
		Locale:   locale,
		Reply:    reply,
	})
}

func (h *GuardHandler) decide(ctx context.Context, text string) (safety.Decision, bool) {
	if h.verdicts != nil {
		if d, err := h.verdicts.Get(ctx, text); err == nil && d != nil {
			return *d, true
		}
	}

	d := h.engine.ApplyPolicies(text)

	if h.verdicts != nil {
		if err := h.verdicts.Set(ctx, text, d); err != nil {
			slog.Warn("verdict cache write failed", "error", err)
		}
	}
	return d, false
}

func (h *GuardHandler) enqueueAudit(d safety.Decision, locale safety.Locale, latency time.Duration) {
	if h.queue == nil {
		return
	}
	err := h.queue.EnqueueDecisionAudit(queue.DecisionAuditPayload{
		Category:  string(d.Category),
		Reason:    d.Reason,
		Blocked:   d.Blocked,
		Locale:    string(locale),
		Redacted:  len(d.Redactions) > 0,
		LatencyMs: latency.Milliseconds(),
	})
	if err != nil {
		slog.Warn("audit enqueue failed", "error", err)
	}
}

type replyRequest struct {
	Category safety.Category `json:"category"`
	Locale   safety.Locale   `json:"locale"`
	Intent   string          `json:"intent,omitempty"`
}

// Reply renders the safe templated response for a category and locale,
// for callers that already hold a verdict.
func (h *GuardHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Locale == "" {
		req.Locale = safety.LocaleVI
	}

	reply := h.engine.SafeReply(req.Category, req.Locale, safety.ReplyContext{Intent: req.Intent})
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

type redactRequest struct {
	Text       string   `json:"text"`
	Redactions []string `json:"redactions"`
}

// RedactOutput scrubs redaction tokens from downstream generator
// output. The engine canary is always included so a leaked marker can
// never reach the end user.
func (h *GuardHandler) RedactOutput(w http.ResponseWriter, r *http.Request) {
	var req redactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	redactions := append([]string{h.engine.Canary()}, req.Redactions...)
	writeJSON(w, http.StatusOK, map[string]string{
		"text": safety.Redact(req.Text, redactions),
	})
}
