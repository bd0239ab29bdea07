package domain

import "time"

// AuditEntry records one portal request for the operational audit trail.
type AuditEntry struct {
	SessionID  string        `json:"session_id" bson:"session_id"`
	UserID     ID            `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Username   string        `json:"username,omitempty" bson:"username,omitempty"`
	Method     string        `json:"method" bson:"method"`
	Endpoint   string        `json:"endpoint" bson:"endpoint"`
	StatusCode int           `json:"status_code" bson:"status_code"`
	Duration   time.Duration `json:"duration_ms" bson:"duration_ms"`
	Timestamp  time.Time     `json:"timestamp" bson:"timestamp"`
}
