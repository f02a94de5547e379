package domain

import "time"

// Audit action tags.
const (
	AuditCreateAccount = "CREATE_ACCOUNT"
	AuditUpdateAccount = "UPDATE_ACCOUNT"
	AuditDeleteAccount = "DELETE_ACCOUNT"
)

// AuditEvent records a privileged account mutation. Events are append-only:
// never mutated, never deleted, and never used to drive application logic.
type AuditEvent struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Action    string         `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
	Detail    map[string]any `json:"detail,omitempty"`
}
