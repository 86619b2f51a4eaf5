package domain

import (
	"encoding/json"
	"time"
)

// TradeStatus is the lifecycle state of a trade. PENDING is the only
// non-terminal state.
type TradeStatus string

const (
	TradeStatusPending   TradeStatus = "PENDING"
	TradeStatusConfirmed TradeStatus = "CONFIRMED"
	TradeStatusCancelled TradeStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s TradeStatus) IsTerminal() bool {
	return s != TradeStatusPending
}

// TradeParty identifies which side of a trade a user is on.
type TradeParty string

const (
	PartyProposer  TradeParty = "PROPOSER"
	PartyResponder TradeParty = "RESPONDER"
)

// Trade represents a proposed or resolved exchange between two users.
// The offer payloads are opaque to this subsystem and stored verbatim.
type Trade struct {
	TradeID            string          `json:"tradeId"`
	ProposerID         string          `json:"proposerId"`
	ResponderID        string          `json:"responderId"`
	ProposerOffer      json.RawMessage `json:"proposerOfferJson"`
	ResponderOffer     json.RawMessage `json:"responderOfferJson"`
	ProposerConfirmed  bool            `json:"proposerConfirmed"`
	ResponderConfirmed bool            `json:"responderConfirmed"`
	Status             TradeStatus     `json:"status"`
	ClosedAt           *time.Time      `json:"closedAt,omitempty"`
	AuditFields
}

// PartyOf returns the side userID is on, or false if userID is not a
// participant of this trade.
func (t *Trade) PartyOf(userID string) (TradeParty, bool) {
	switch userID {
	case t.ProposerID:
		return PartyProposer, true
	case t.ResponderID:
		return PartyResponder, true
	}
	return "", false
}

// BothConfirmed reports whether both participants have confirmed.
func (t *Trade) BothConfirmed() bool {
	return t.ProposerConfirmed && t.ResponderConfirmed
}

// TradeClosure is the append-only audit record of how a trade ended.
// There is at most one closure per trade, keyed by TradeID, and it is
// never updated or deleted once written.
type TradeClosure struct {
	TradeID     string          `json:"tradeId"`
	ProposerID  string          `json:"proposerId"`
	ResponderID string          `json:"responderId"`
	OfferA      json.RawMessage `json:"offerA"`
	OfferB      json.RawMessage `json:"offerB"`
	FinalStatus TradeStatus     `json:"finalStatus"`
	ClosedAt    time.Time       `json:"closedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
}
