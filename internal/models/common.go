package models

import "time"

// AuditFields holds standard bookkeeping timestamps for persisted records.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
