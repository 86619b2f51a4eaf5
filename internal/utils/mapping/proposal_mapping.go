package mapping

import (
	"github.com/truequeo/trueque_backend/internal/core/domain"
	"github.com/truequeo/trueque_backend/internal/models"
)

// ToModelProposal converts a domain Proposal to a model Proposal
func ToModelProposal(d domain.Proposal) models.Proposal {
	return models.Proposal{
		ProposalID:  d.ProposalID,
		ProposerID:  d.ProposerID,
		ResponderID: d.ResponderID,
		OfferAID:    d.OfferAID,
		OfferBID:    d.OfferBID,
		Message:     d.Message,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProposal converts a model Proposal to a domain Proposal
func ToDomainProposal(m models.Proposal) domain.Proposal {
	return domain.Proposal{
		ProposalID:  m.ProposalID,
		ProposerID:  m.ProposerID,
		ResponderID: m.ResponderID,
		OfferAID:    m.OfferAID,
		OfferBID:    m.OfferBID,
		Message:     m.Message,
		Status:      domain.ProposalStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelProposalEvent converts a domain ProposalEvent to a model ProposalEvent
func ToModelProposalEvent(d domain.ProposalEvent) models.ProposalEvent {
	return models.ProposalEvent{
		EventID:    d.EventID,
		ProposalID: d.ProposalID,
		ActorID:    d.ActorID,
		EventType:  string(d.EventType),
		Payload:    d.Payload,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainProposalEvent converts a model ProposalEvent to a domain ProposalEvent
func ToDomainProposalEvent(m models.ProposalEvent) domain.ProposalEvent {
	return domain.ProposalEvent{
		EventID:    m.EventID,
		ProposalID: m.ProposalID,
		ActorID:    m.ActorID,
		EventType:  domain.ProposalEventType(m.EventType),
		Payload:    m.Payload,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainProposalEventSlice converts a slice of model ProposalEvents to domain ProposalEvents
func ToDomainProposalEventSlice(ms []models.ProposalEvent) []domain.ProposalEvent {
	ds := make([]domain.ProposalEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProposalEvent(m)
	}
	return ds
}
