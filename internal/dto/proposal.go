package dto

import (
	"encoding/json"
	"time"

	"github.com/truequeo/trueque_backend/internal/core/domain"
)

// CreateProposalRequest is the request body for creating a proposal.
type CreateProposalRequest struct {
	ProposerID  string `json:"proposerId" binding:"required"`
	ResponderID string `json:"responderId" binding:"required"`
	OfferAID    string `json:"ofertaAId" binding:"required"`
	OfferBID    string `json:"ofertaBId" binding:"required"`
	Message     string `json:"mensaje"`
}

// ProposalDecisionRequest is the request body for the responder's decision.
type ProposalDecisionRequest struct {
	ActorID  string `json:"userId" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=accept reject"`
}

// CancelProposalRequest is the request body for cancelling a proposal.
type CancelProposalRequest struct {
	ActorID string `json:"userId" binding:"required"`
}

// ProposalResponse is the API representation of a proposal.
type ProposalResponse struct {
	ProposalID  string    `json:"proposalId"`
	ProposerID  string    `json:"proposerId"`
	ResponderID string    `json:"responderId"`
	OfferAID    string    `json:"ofertaAId"`
	OfferBID    string    `json:"ofertaBId"`
	Message     string    `json:"mensaje,omitempty"`
	Status      string    `json:"estado"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToProposalResponse converts a domain Proposal to its API representation.
func ToProposalResponse(p *domain.Proposal) ProposalResponse {
	return ProposalResponse{
		ProposalID:  p.ProposalID,
		ProposerID:  p.ProposerID,
		ResponderID: p.ResponderID,
		OfferAID:    p.OfferAID,
		OfferBID:    p.OfferBID,
		Message:     p.Message,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProposalEventResponse is the API representation of one audit-log entry.
type ProposalEventResponse struct {
	EventID    string          `json:"eventId"`
	ProposalID string          `json:"propuestaId"`
	ActorID    string          `json:"actorId"`
	EventType  string          `json:"tipo"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToProposalEventResponses converts domain ProposalEvents to their API representation.
func ToProposalEventResponses(events []domain.ProposalEvent) []ProposalEventResponse {
	out := make([]ProposalEventResponse, len(events))
	for i, e := range events {
		out[i] = ProposalEventResponse{
			EventID:    e.EventID,
			ProposalID: e.ProposalID,
			ActorID:    e.ActorID,
			EventType:  string(e.EventType),
			Payload:    e.Payload,
			CreatedAt:  e.CreatedAt,
		}
	}
	return out
}
