package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/phamlt/guardrail/internal/audit"
	"github.com/phamlt/guardrail/internal/queue"
	"github.com/phamlt/guardrail/internal/safety"
)

// AuditWorker drains decision:audit tasks into Postgres.
type AuditWorker struct {
	audit *audit.Service
}

func NewAuditWorker(auditSvc *audit.Service) *AuditWorker {
	return &AuditWorker{audit: auditSvc}
}

func (w *AuditWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.DecisionAuditPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	rec := audit.Record{
		Category:  safety.Category(payload.Category),
		Reason:    payload.Reason,
		Blocked:   payload.Blocked,
		Locale:    safety.Locale(payload.Locale),
		Redacted:  payload.Redacted,
		LatencyMs: payload.LatencyMs,
	}
	if err := w.audit.Log(ctx, rec); err != nil {
		return err
	}

	slog.Debug("audited policy decision", "reason", payload.Reason, "blocked", payload.Blocked)
	return nil
}
