package queue

const (
	TypeDecisionAudit = "decision:audit"
)

// DecisionAuditPayload carries one policy verdict to the audit worker.
// The prompt itself never enters the queue.
type DecisionAuditPayload struct {
	Category  string `json:"category,omitempty"`
	Reason    string `json:"reason"`
	Blocked   bool   `json:"blocked"`
	Locale    string `json:"locale"`
	Redacted  bool   `json:"redacted"`
	LatencyMs int64  `json:"latency_ms"`
}
