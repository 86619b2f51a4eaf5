package recordstorerepo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/truequeo/trueque_backend/internal/apperrors"
	"github.com/truequeo/trueque_backend/internal/core/domain"
	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	"github.com/truequeo/trueque_backend/internal/models"
	"github.com/truequeo/trueque_backend/internal/utils/mapping"
	"github.com/truequeo/trueque_backend/pkg/recordstore"
)

const (
	proposalCollection      = "PropuestaTrueque"
	proposalEventCollection = "PropuestaEvento"
)

// ProposalRepository implements the proposal repository ports on the record
// store. Collection names follow the upstream schema.
type ProposalRepository struct {
	client *recordstore.Client
}

// NewProposalRepository creates a new ProposalRepository.
func NewProposalRepository(client *recordstore.Client) *ProposalRepository {
	return &ProposalRepository{client: client}
}

// Ensure ProposalRepository implements the portsrepo.ProposalRepositoryFacade interface
var _ portsrepo.ProposalRepositoryFacade = (*ProposalRepository)(nil)

// FindProposalByID implements portsrepo.ProposalReader
func (r *ProposalRepository) FindProposalByID(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	var model models.Proposal
	if err := r.client.Get(ctx, proposalCollection, proposalID, &model); err != nil {
		return nil, translateErr(err, "proposal "+proposalID)
	}
	proposal := mapping.ToDomainProposal(model)
	return &proposal, nil
}

// SaveProposal implements portsrepo.ProposalWriter
func (r *ProposalRepository) SaveProposal(ctx context.Context, proposal domain.Proposal) error {
	model := mapping.ToModelProposal(proposal)
	if err := r.client.Insert(ctx, proposalCollection, model.ProposalID, model); err != nil {
		return translateErr(err, "proposal "+model.ProposalID)
	}
	return nil
}

// UpdateProposalStatus implements portsrepo.ProposalWriter
func (r *ProposalRepository) UpdateProposalStatus(ctx context.Context, proposalID string, status domain.ProposalStatus, updatedAt time.Time) (*domain.Proposal, error) {
	var model models.Proposal
	if err := r.client.Get(ctx, proposalCollection, proposalID, &model); err != nil {
		return nil, translateErr(err, "proposal "+proposalID)
	}

	if domain.ProposalStatus(model.Status).IsTerminal() {
		return nil, fmt.Errorf("%w: proposal is already %s", apperrors.ErrConflict, model.Status)
	}

	model.Status = string(status)
	model.UpdatedAt = updatedAt

	if err := r.client.Update(ctx, proposalCollection, proposalID, model); err != nil {
		return nil, translateErr(err, "proposal "+proposalID)
	}
	proposal := mapping.ToDomainProposal(model)
	return &proposal, nil
}

// AppendProposalEvent implements portsrepo.ProposalEventWriter
func (r *ProposalRepository) AppendProposalEvent(ctx context.Context, event domain.ProposalEvent) error {
	model := mapping.ToModelProposalEvent(event)
	if err := r.client.Insert(ctx, proposalEventCollection, model.EventID, model); err != nil {
		return translateErr(err, "proposal event "+model.EventID)
	}
	return nil
}

// ListProposalEvents implements portsrepo.ProposalEventReader
func (r *ProposalRepository) ListProposalEvents(ctx context.Context, proposalID string) ([]domain.ProposalEvent, error) {
	filter := url.Values{"propuestaId": []string{proposalID}}

	var eventModels []models.ProposalEvent
	if err := r.client.List(ctx, proposalEventCollection, filter, &eventModels); err != nil {
		// A proposal with no events yields an empty list, not an error.
		if !errors.Is(err, recordstore.ErrNotFound) {
			return nil, translateErr(err, "events for proposal "+proposalID)
		}
	}

	// The record store does not guarantee result order.
	sort.SliceStable(eventModels, func(i, j int) bool {
		return eventModels[i].CreatedAt.Before(eventModels[j].CreatedAt)
	})

	return mapping.ToDomainProposalEventSlice(eventModels), nil
}
