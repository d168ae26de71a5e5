package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phamlt/guardrail/internal/audit"
	"github.com/phamlt/guardrail/internal/cache"
	"github.com/phamlt/guardrail/internal/config"
	"github.com/phamlt/guardrail/internal/safety"
)

type AdminHandler struct {
	engine   *safety.Engine
	audit    *audit.Service
	verdicts *cache.VerdictCache
	guardCfg config.GuardConfig
}

func NewAdminHandler(engine *safety.Engine, auditSvc *audit.Service, verdicts *cache.VerdictCache, guardCfg config.GuardConfig) *AdminHandler {
	return &AdminHandler{engine: engine, audit: auditSvc, verdicts: verdicts, guardCfg: guardCfg}
}

// Decisions lists recent audited verdicts, filterable by category and
// blocked flag.
func (h *AdminHandler) Decisions(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "audit store unavailable"})
		return
	}

	q := audit.Query{Category: r.URL.Query().Get("category")}
	if v := r.URL.Query().Get("blocked"); v != "" {
		blocked, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid blocked filter"})
			return
		}
		q.Blocked = &blocked
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			q.Limit = limit
		}
	}

	records, err := h.audit.Decisions(r.Context(), q)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"decisions": records})
}

// Summary aggregates the decision log per category.
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "audit store unavailable"})
		return
	}

	var since *time.Time
	if v := r.URL.Query().Get("since"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid since timestamp"})
			return
		}
		since = &parsed
	}

	summary, err := h.audit.CategorySummary(r.Context(), since)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"summary": summary})
}

// ReloadPolicies re-reads the policy and template files and swaps the
// engine configuration atomically. A rejected config leaves the old one
// serving; the verdict cache is flushed only after a successful swap.
func (h *AdminHandler) ReloadPolicies(w http.ResponseWriter, r *http.Request) {
	opts, err := safety.OptionsFromFiles(h.guardCfg.PolicyPath, h.guardCfg.TemplatesPath, h.guardCfg.Canary)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.engine.Reload(opts); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	if h.verdicts != nil {
		if err := h.verdicts.Flush(r.Context()); err != nil {
			slog.Warn("verdict cache flush failed", "error", err)
		}
	}

	slog.Info("policy configuration reloaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
