package services

import (
	"context"

	"github.com/truequeo/trueque_backend/internal/core/domain"
	"github.com/truequeo/trueque_backend/internal/dto"
)

// ProposalSvcFacade is the single-decision-maker negotiation flow that
// precedes a trade. Every transition appends an audit event.
type ProposalSvcFacade interface {
	// CreateProposal persists a new PENDING proposal and its CREADA event.
	CreateProposal(ctx context.Context, req dto.CreateProposalRequest) (*domain.Proposal, error)

	// GetProposal retrieves a proposal by id.
	GetProposal(ctx context.Context, proposalID string) (*domain.Proposal, error)

	// Decide records the responder's decision. Only the responder may
	// decide; any other actor gets ErrForbidden. Terminal proposals yield
	// ErrConflict.
	Decide(ctx context.Context, proposalID string, req dto.ProposalDecisionRequest) (*domain.Proposal, error)

	// CancelProposal cancels a PENDING proposal; either party may cancel.
	CancelProposal(ctx context.Context, proposalID string, actorID string) (*domain.Proposal, error)

	// AuditTrail returns the proposal's events in creation order.
	AuditTrail(ctx context.Context, proposalID string) ([]domain.ProposalEvent, error)
}
