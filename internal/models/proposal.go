package models

import (
	"encoding/json"
	"time"
)

// Proposal is the persisted shape of a negotiation-stage proposal. Field
// names follow the upstream PropuestaTrueque collection.
type Proposal struct {
	ProposalID  string `json:"proposalId" db:"proposal_id"`
	ProposerID  string `json:"proposerId" db:"proposer_id"`
	ResponderID string `json:"responderId" db:"responder_id"`
	OfferAID    string `json:"ofertaAId" db:"offer_a_id"`
	OfferBID    string `json:"ofertaBId" db:"offer_b_id"`
	Message     string `json:"mensaje,omitempty" db:"message"`
	Status      string `json:"estado" db:"status"`
	AuditFields
}

// ProposalEvent is the persisted shape of one proposal audit-log entry
// (upstream PropuestaEvento collection). Append only.
type ProposalEvent struct {
	EventID    string          `json:"eventId" db:"event_id"`
	ProposalID string          `json:"propuestaId" db:"proposal_id"`
	ActorID    string          `json:"actorId" db:"actor_id"`
	EventType  string          `json:"tipo" db:"event_type"`
	Payload    json.RawMessage `json:"payload,omitempty" db:"payload"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}
