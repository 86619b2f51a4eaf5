package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/truequeo/trueque_backend/internal/apperrors"
	"github.com/truequeo/trueque_backend/internal/core/domain"
	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	portssvc "github.com/truequeo/trueque_backend/internal/core/ports/services"
	"github.com/truequeo/trueque_backend/internal/dto"
	"github.com/truequeo/trueque_backend/internal/middleware"
	"github.com/truequeo/trueque_backend/internal/utils/locking"
)

// proposalService drives the negotiation step that precedes a trade. Only
// the responder decides; either party may cancel while the proposal is
// still PENDING. Every transition appends an audit event.
type proposalService struct {
	proposalRepo  portsrepo.ProposalRepositoryFacade
	proposalLocks *locking.KeyedMutex
}

// NewProposalService creates a new ProposalService.
func NewProposalService(proposalRepo portsrepo.ProposalRepositoryFacade) portssvc.ProposalSvcFacade {
	return &proposalService{
		proposalRepo:  proposalRepo,
		proposalLocks: locking.NewKeyedMutex(),
	}
}

// Ensure proposalService implements the portssvc.ProposalSvcFacade interface
var _ portssvc.ProposalSvcFacade = (*proposalService)(nil)

// CreateProposal persists a new PENDING proposal and its CREADA event.
// Implements portssvc.ProposalSvcFacade
func (s *proposalService) CreateProposal(ctx context.Context, req dto.CreateProposalRequest) (*domain.Proposal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ProposerID == req.ResponderID {
		return nil, fmt.Errorf("%w: cannot open a proposal with yourself", apperrors.ErrValidation)
	}
	if req.OfferAID == req.OfferBID {
		return nil, fmt.Errorf("%w: both sides reference the same offer", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	proposal := domain.Proposal{
		ProposalID:  uuid.NewString(),
		ProposerID:  req.ProposerID,
		ResponderID: req.ResponderID,
		OfferAID:    req.OfferAID,
		OfferBID:    req.OfferBID,
		Message:     req.Message,
		Status:      domain.ProposalStatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.proposalRepo.SaveProposal(ctx, proposal); err != nil {
		logger.Error("Failed to save proposal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}

	s.appendEvent(ctx, proposal.ProposalID, req.ProposerID, domain.ProposalEventCreated, map[string]string{
		"ofertaAId": req.OfferAID,
		"ofertaBId": req.OfferBID,
	})

	logger.Info("Proposal created", slog.String("proposal_id", proposal.ProposalID))
	return &proposal, nil
}

// GetProposal retrieves a proposal by id.
// Implements portssvc.ProposalSvcFacade
func (s *proposalService) GetProposal(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find proposal %s: %w", proposalID, err)
	}
	return proposal, nil
}

// Decide records the responder's accept or reject decision.
// Implements portssvc.ProposalSvcFacade
func (s *proposalService) Decide(ctx context.Context, proposalID string, req dto.ProposalDecisionRequest) (*domain.Proposal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.proposalLocks.Lock(proposalID)
	defer unlock()

	proposal, err := s.proposalRepo.FindProposalByID(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find proposal %s: %w", proposalID, err)
	}

	// Only the responder decides. The proposer's lever is cancellation.
	if req.ActorID != proposal.ResponderID {
		return nil, fmt.Errorf("%w: only the responder may decide on this proposal", apperrors.ErrForbidden)
	}

	if proposal.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: proposal is already %s", apperrors.ErrConflict, proposal.Status)
	}

	newStatus := domain.ProposalStatusRejected
	if req.Decision == "accept" {
		newStatus = domain.ProposalStatusAccepted
	}

	updated, err := s.proposalRepo.UpdateProposalStatus(ctx, proposalID, newStatus, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to update proposal status", slog.String("proposal_id", proposalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update proposal %s: %w", proposalID, err)
	}

	s.appendEvent(ctx, proposalID, req.ActorID, domain.ProposalEventDecision, map[string]string{
		"decision": req.Decision,
	})

	logger.Info("Proposal decided",
		slog.String("proposal_id", proposalID), slog.String("decision", req.Decision))
	return updated, nil
}

// CancelProposal cancels a PENDING proposal on behalf of either party.
// Implements portssvc.ProposalSvcFacade
func (s *proposalService) CancelProposal(ctx context.Context, proposalID string, actorID string) (*domain.Proposal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.proposalLocks.Lock(proposalID)
	defer unlock()

	proposal, err := s.proposalRepo.FindProposalByID(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find proposal %s: %w", proposalID, err)
	}

	if actorID != proposal.ProposerID && actorID != proposal.ResponderID {
		return nil, fmt.Errorf("%w: user %s is not a party to this proposal", apperrors.ErrForbidden, actorID)
	}

	if proposal.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: proposal is already %s", apperrors.ErrConflict, proposal.Status)
	}

	updated, err := s.proposalRepo.UpdateProposalStatus(ctx, proposalID, domain.ProposalStatusCancelled, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to cancel proposal", slog.String("proposal_id", proposalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to cancel proposal %s: %w", proposalID, err)
	}

	s.appendEvent(ctx, proposalID, actorID, domain.ProposalEventCancelled, nil)

	logger.Info("Proposal cancelled", slog.String("proposal_id", proposalID), slog.String("actor_id", actorID))
	return updated, nil
}

// AuditTrail returns the proposal's events in creation order.
// Implements portssvc.ProposalSvcFacade
func (s *proposalService) AuditTrail(ctx context.Context, proposalID string) ([]domain.ProposalEvent, error) {
	// Resolve the proposal first so a missing id yields ErrNotFound rather
	// than an empty list.
	if _, err := s.proposalRepo.FindProposalByID(ctx, proposalID); err != nil {
		return nil, fmt.Errorf("failed to find proposal %s: %w", proposalID, err)
	}

	events, err := s.proposalRepo.ListProposalEvents(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for proposal %s: %w", proposalID, err)
	}
	return events, nil
}

// appendEvent writes one audit-log entry. The status transition has already
// been committed when this runs, so an append failure is logged rather than
// surfaced to the caller.
func (s *proposalService) appendEvent(ctx context.Context, proposalID, actorID string, eventType domain.ProposalEventType, payload map[string]string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var raw json.RawMessage
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to encode audit event payload",
				slog.String("proposal_id", proposalID), slog.String("error", err.Error()))
			return
		}
		raw = encoded
	}

	event := domain.ProposalEvent{
		EventID:    uuid.NewString(),
		ProposalID: proposalID,
		ActorID:    actorID,
		EventType:  eventType,
		Payload:    raw,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.proposalRepo.AppendProposalEvent(ctx, event); err != nil {
		logger.Error("Failed to append audit event",
			slog.String("proposal_id", proposalID),
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
	}
}
