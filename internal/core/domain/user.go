package domain

import "github.com/shopspring/decimal"

// User represents a marketplace participant. Profile management lives in a
// separate service; this subsystem only reads users and bumps the two
// reputation counters when a trade closes as CONFIRMED.
type User struct {
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	TradesClosed    int64           `json:"tradesClosed"`
	ReputationScore decimal.Decimal `json:"reputationScore"`
	AuditFields
}
