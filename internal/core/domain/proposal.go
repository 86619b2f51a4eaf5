package domain

import (
	"encoding/json"
	"time"
)

// ProposalStatus is the lifecycle state of a negotiation-stage proposal.
type ProposalStatus string

const (
	ProposalStatusPending   ProposalStatus = "PENDING"
	ProposalStatusAccepted  ProposalStatus = "ACCEPTED"
	ProposalStatusRejected  ProposalStatus = "REJECTED"
	ProposalStatusCancelled ProposalStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s ProposalStatus) IsTerminal() bool {
	return s != ProposalStatusPending
}

// Proposal is the single-decision-maker negotiation step that precedes a
// Trade. Only the responder decides; either party may cancel while PENDING.
type Proposal struct {
	ProposalID  string         `json:"proposalId"`
	ProposerID  string         `json:"proposerId"`
	ResponderID string         `json:"responderId"`
	OfferAID    string         `json:"ofertaAId"`
	OfferBID    string         `json:"ofertaBId"`
	Message     string         `json:"mensaje,omitempty"`
	Status      ProposalStatus `json:"estado"`
	AuditFields
}

// ProposalEventType labels entries of the proposal audit log. The names are
// kept from the upstream wire format.
type ProposalEventType string

const (
	ProposalEventCreated   ProposalEventType = "CREADA"
	ProposalEventDecision  ProposalEventType = "DECISION"
	ProposalEventCancelled ProposalEventType = "CANCELADA"
)

// ProposalEvent is one entry of the append-only, time-ordered audit log of a
// proposal. Events are only ever appended and are read back in creation
// order.
type ProposalEvent struct {
	EventID    string            `json:"eventId"`
	ProposalID string            `json:"propuestaId"`
	ActorID    string            `json:"actorId"`
	EventType  ProposalEventType `json:"tipo"`
	Payload    json.RawMessage   `json:"payload,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
