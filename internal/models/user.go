package models

import "github.com/shopspring/decimal"

// User is the persisted shape of a user, restricted to the fields this
// subsystem reads and the two counters it writes.
type User struct {
	UserID          string          `json:"userId" db:"user_id"`
	Name            string          `json:"name" db:"name"`
	TradesClosed    int64           `json:"tradesClosed" db:"trades_closed"`
	ReputationScore decimal.Decimal `json:"reputationScore" db:"reputation_score"`
	AuditFields
}
