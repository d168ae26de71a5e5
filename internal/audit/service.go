package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamlt/guardrail/internal/safety"
)

// Service persists policy decisions for operator review. It lives off
// the classification path: the API enqueues records and the worker
// writes them here.
type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// Record is one audited policy decision. The prompt itself is never
// stored, only its verdict and metadata.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	Category  safety.Category `json:"category,omitempty"`
	Reason    string          `json:"reason"`
	Blocked   bool            `json:"blocked"`
	Locale    safety.Locale   `json:"locale"`
	Redacted  bool            `json:"redacted"`
	LatencyMs int64           `json:"latency_ms"`
	CreatedAt time.Time       `json:"created_at"`
}

func (s *Service) Log(ctx context.Context, r Record) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO policy_decisions (id, category, reason, blocked, locale, redacted, latency_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, string(r.Category), r.Reason, r.Blocked, string(r.Locale), r.Redacted, r.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("insert policy decision: %w", err)
	}
	return nil
}

// Query filters the decision log.
type Query struct {
	Category string
	Blocked  *bool
	Since    *time.Time
	Limit    int
	Offset   int
}

func (s *Service) Decisions(ctx context.Context, q Query) ([]Record, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	query := `SELECT id, category, reason, blocked, locale, redacted, latency_ms, created_at
			  FROM policy_decisions WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if q.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, q.Category)
		argIdx++
	}
	if q.Blocked != nil {
		query += fmt.Sprintf(" AND blocked = $%d", argIdx)
		args = append(args, *q.Blocked)
		argIdx++
	}
	if q.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *q.Since)
		argIdx++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query policy decisions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var category, locale string
		if err := rows.Scan(&r.ID, &category, &r.Reason, &r.Blocked, &locale, &r.Redacted, &r.LatencyMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan policy decision: %w", err)
		}
		r.Category = safety.Category(category)
		r.Locale = safety.Locale(locale)
		records = append(records, r)
	}
	return records, nil
}

// Summary aggregates decision counts per category.
type Summary struct {
	Category safety.Category `json:"category"`
	Total    int             `json:"total"`
	Blocked  int             `json:"blocked"`
}

func (s *Service) CategorySummary(ctx context.Context, since *time.Time) ([]Summary, error) {
	query := `SELECT category, COUNT(*), COUNT(*) FILTER (WHERE blocked)
			  FROM policy_decisions`
	args := []interface{}{}
	if since != nil {
		query += " WHERE created_at >= $1"
		args = append(args, *since)
	}
	query += " GROUP BY category ORDER BY COUNT(*) DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query decision summary: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sm Summary
		var category string
		if err := rows.Scan(&category, &sm.Total, &sm.Blocked); err != nil {
			return nil, fmt.Errorf("scan decision summary: %w", err)
		}
		sm.Category = safety.Category(category)
		summaries = append(summaries, sm)
	}
	return summaries, nil
}
