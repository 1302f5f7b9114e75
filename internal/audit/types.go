package audit

import (
	"time"
)

// AuditAction represents the type of action confirmed on a record
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionExport AuditAction = "export"
	AuditActionPrint  AuditAction = "print"
)

// AuditLog represents a single audit log entry
type AuditLog struct {
	ID        string                 `json:"id"`
	RecordID  int64                  `json:"record_id,omitempty"`
	Action    AuditAction            `json:"action"`
	Timestamp time.Time              `json:"timestamp"`
	SessionID string                 `json:"session_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Changes   map[string]Change      `json:"changes,omitempty"`
}

// Change represents a change in a record field
type Change struct {
	OldValue interface{} `json:"old_value,omitempty"`
	NewValue interface{} `json:"new_value,omitempty"`
}

// ChangesFromDiff converts a field diff of [old, new] pairs into audit changes.
func ChangesFromDiff(diff map[string][2]interface{}) map[string]Change {
	if len(diff) == 0 {
		return nil
	}

	changes := make(map[string]Change, len(diff))
	for field, pair := range diff {
		changes[field] = Change{OldValue: pair[0], NewValue: pair[1]}
	}
	return changes
}
