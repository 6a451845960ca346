package domain

import "time"

// AuditLog is one best-effort record of an API request. Writes to the audit
// sink never block a response.
type AuditLog struct {
	ID           int64     `json:"id"`
	UserID       *int64    `json:"user_id,omitempty"`
	ActivityType string    `json:"activity_type"`
	BearerToken  string    `json:"bearer_token,omitempty"`
	IPAddress    string    `json:"ip_address,omitempty"`
	Path         string    `json:"path"`
	Timestamp    time.Time `json:"timestamp"`
}

type AuditLogRepository interface {
	CreateAuditLog(entry *AuditLog) error
}
