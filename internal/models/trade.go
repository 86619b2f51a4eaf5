package models

import (
	"encoding/json"
	"time"
)

// Trade is the persisted shape of a trade. The same shape is used for the
// Trade collection of the remote record store (json tags) and for the
// trades table of the Postgres backend (db tags).
type Trade struct {
	TradeID            string          `json:"tradeId" db:"trade_id"`
	ProposerID         string          `json:"proposerId" db:"proposer_id"`
	ResponderID        string          `json:"responderId" db:"responder_id"`
	ProposerOffer      json.RawMessage `json:"proposerOfferJson" db:"proposer_offer"`
	ResponderOffer     json.RawMessage `json:"responderOfferJson" db:"responder_offer"`
	ProposerConfirmed  bool            `json:"proposerConfirmed" db:"proposer_confirmed"`
	ResponderConfirmed bool            `json:"responderConfirmed" db:"responder_confirmed"`
	Status             string          `json:"status" db:"status"`
	ClosedAt           *time.Time      `json:"closedAt,omitempty" db:"closed_at"`
	AuditFields
}

// TradeClosure is the persisted shape of a closure record. Keyed uniquely by
// TradeID; written once, never mutated.
type TradeClosure struct {
	TradeID     string          `json:"tradeId" db:"trade_id"`
	ProposerID  string          `json:"proposerId" db:"proposer_id"`
	ResponderID string          `json:"responderId" db:"responder_id"`
	OfferA      json.RawMessage `json:"offerA" db:"offer_a"`
	OfferB      json.RawMessage `json:"offerB" db:"offer_b"`
	FinalStatus string          `json:"finalStatus" db:"final_status"`
	ClosedAt    time.Time       `json:"closedAt" db:"closed_at"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}
