package dto

import (
	"encoding/json"
	"time"

	"github.com/truequeo/trueque_backend/internal/core/domain"
)

// CreateTradeRequest is the request body for creating a trade. The offer
// payloads arrive as JSON-encoded strings (free structure) and are stored
// verbatim after a syntax check.
type CreateTradeRequest struct {
	ProposerID         string `json:"proposerId" binding:"required"`
	ResponderID        string `json:"responderId" binding:"required"`
	ProposerOfferJSON  string `json:"proposerOfferJson" binding:"required"`
	ResponderOfferJSON string `json:"responderOfferJson" binding:"required"`
}

// ConfirmTradeRequest is the request body for confirming or rejecting a
// trade. The actor id normally comes from the JWT subject; it is carried in
// the body to match the upstream API.
type ConfirmTradeRequest struct {
	ActorID string `json:"userId" binding:"required"`
	Accept  *bool  `json:"accept" binding:"required"`
}

// CancelTradeRequest is the request body for the explicit cancel shortcut.
type CancelTradeRequest struct {
	ActorID string `json:"userId" binding:"required"`
}

// TradeResponse is the API representation of a trade.
type TradeResponse struct {
	TradeID            string          `json:"tradeId"`
	ProposerID         string          `json:"proposerId"`
	ResponderID        string          `json:"responderId"`
	ProposerOffer      json.RawMessage `json:"proposerOfferJson"`
	ResponderOffer     json.RawMessage `json:"responderOfferJson"`
	ProposerConfirmed  bool            `json:"proposerConfirmed"`
	ResponderConfirmed bool            `json:"responderConfirmed"`
	Status             string          `json:"status"`
	ClosedAt           *time.Time      `json:"closedAt,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// ToTradeResponse converts a domain Trade to its API representation.
func ToTradeResponse(t *domain.Trade) TradeResponse {
	return TradeResponse{
		TradeID:            t.TradeID,
		ProposerID:         t.ProposerID,
		ResponderID:        t.ResponderID,
		ProposerOffer:      t.ProposerOffer,
		ResponderOffer:     t.ResponderOffer,
		ProposerConfirmed:  t.ProposerConfirmed,
		ResponderConfirmed: t.ResponderConfirmed,
		Status:             string(t.Status),
		ClosedAt:           t.ClosedAt,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// TradeClosureResponse is the API representation of a closure record.
type TradeClosureResponse struct {
	TradeID     string          `json:"tradeId"`
	ProposerID  string          `json:"proposerId"`
	ResponderID string          `json:"responderId"`
	OfferA      json.RawMessage `json:"offerA"`
	OfferB      json.RawMessage `json:"offerB"`
	FinalStatus string          `json:"finalStatus"`
	ClosedAt    time.Time       `json:"closedAt"`
}

// ToTradeClosureResponse converts a domain TradeClosure to its API representation.
func ToTradeClosureResponse(c *domain.TradeClosure) TradeClosureResponse {
	return TradeClosureResponse{
		TradeID:     c.TradeID,
		ProposerID:  c.ProposerID,
		ResponderID: c.ResponderID,
		OfferA:      c.OfferA,
		OfferB:      c.OfferB,
		FinalStatus: string(c.FinalStatus),
		ClosedAt:    c.ClosedAt,
	}
}
