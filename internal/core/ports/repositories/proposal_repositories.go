package repositories

import (
	"context"
	"time"

	"github.com/truequeo/trueque_backend/internal/core/domain"
)

// ProposalReader defines read operations for proposal data
type ProposalReader interface {
	// FindProposalByID retrieves a specific proposal by its unique identifier.
	FindProposalByID(ctx context.Context, proposalID string) (*domain.Proposal, error)
}

// ProposalWriter defines write operations for proposal data
type ProposalWriter interface {
	// SaveProposal persists a new proposal.
	SaveProposal(ctx context.Context, proposal domain.Proposal) error

	// UpdateProposalStatus transitions a PENDING proposal to the given
	// status and returns the updated proposal. Returns ErrConflict if the
	// proposal already left PENDING.
	UpdateProposalStatus(ctx context.Context, proposalID string, status domain.ProposalStatus, updatedAt time.Time) (*domain.Proposal, error)
}

// ProposalEventWriter appends entries to the proposal audit log
type ProposalEventWriter interface {
	// AppendProposalEvent appends one event to the proposal's audit log.
	// Events are immutable once written.
	AppendProposalEvent(ctx context.Context, event domain.ProposalEvent) error
}

// ProposalEventReader reads the proposal audit log
type ProposalEventReader interface {
	// ListProposalEvents returns all events of a proposal ordered by
	// creation time, oldest first.
	ListProposalEvents(ctx context.Context, proposalID string) ([]domain.ProposalEvent, error)
}

// ProposalRepositoryFacade combines all proposal-related repository interfaces
type ProposalRepositoryFacade interface {
	ProposalReader
	ProposalWriter
	ProposalEventWriter
	ProposalEventReader
}
