package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/truequeo/trueque_backend/internal/apperrors"
	"github.com/truequeo/trueque_backend/internal/core/domain"
	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	"github.com/truequeo/trueque_backend/internal/models"
	"github.com/truequeo/trueque_backend/internal/utils/mapping"
)

// PgxProposalRepository persists proposals and their append-only audit log
// in Postgres.
type PgxProposalRepository struct {
	db *pgxpool.Pool
}

func newPgxProposalRepository(db *pgxpool.Pool) *PgxProposalRepository {
	return &PgxProposalRepository{db: db}
}

// Ensure PgxProposalRepository implements portsrepo.ProposalRepositoryFacade
var _ portsrepo.ProposalRepositoryFacade = (*PgxProposalRepository)(nil)

const proposalColumns = `proposal_id, proposer_id, responder_id, offer_a_id, offer_b_id,
		message, status, created_at, updated_at`

func scanProposal(row pgx.Row) (*domain.Proposal, error) {
	var m models.Proposal
	err := row.Scan(
		&m.ProposalID,
		&m.ProposerID,
		&m.ResponderID,
		&m.OfferAID,
		&m.OfferBID,
		&m.Message,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	proposal := mapping.ToDomainProposal(m)
	return &proposal, nil
}

func (r *PgxProposalRepository) SaveProposal(ctx context.Context, proposal domain.Proposal) error {
	m := mapping.ToModelProposal(proposal)
	query := `
        INSERT INTO proposals (proposal_id, proposer_id, responder_id, offer_a_id, offer_b_id,
            message, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.ProposalID,
		m.ProposerID,
		m.ResponderID,
		m.OfferAID,
		m.OfferBID,
		m.Message,
		m.Status,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save proposal: %w", err)
	}
	return nil
}

func (r *PgxProposalRepository) FindProposalByID(ctx context.Context, proposalID string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE proposal_id = $1;`
	proposal, err := scanProposal(r.db.QueryRow(ctx, query, proposalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find proposal by ID %s: %w", proposalID, err)
	}
	return proposal, nil
}

func (r *PgxProposalRepository) UpdateProposalStatus(ctx context.Context, proposalID string, status domain.ProposalStatus, updatedAt time.Time) (*domain.Proposal, error) {
	query := `
        UPDATE proposals
        SET status = $1, updated_at = $2
        WHERE proposal_id = $3 AND status = 'PENDING'
        RETURNING ` + proposalColumns + `;
    `
	proposal, err := scanProposal(r.db.QueryRow(ctx, query, string(status), updatedAt, proposalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissingPending(ctx, proposalID)
		}
		return nil, fmt.Errorf("failed to update proposal %s status: %w", proposalID, err)
	}
	return proposal, nil
}

func (r *PgxProposalRepository) classifyMissingPending(ctx context.Context, proposalID string) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM proposals WHERE proposal_id = $1;`, proposalID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read proposal %s status: %w", proposalID, err)
	}
	return fmt.Errorf("%w: proposal is already %s", apperrors.ErrConflict, status)
}

func (r *PgxProposalRepository) AppendProposalEvent(ctx context.Context, event domain.ProposalEvent) error {
	m := mapping.ToModelProposalEvent(event)
	query := `
        INSERT INTO proposal_events (event_id, proposal_id, actor_id, event_type, payload, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	_, err := r.db.Exec(ctx, query,
		m.EventID,
		m.ProposalID,
		m.ActorID,
		m.EventType,
		m.Payload,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append proposal event: %w", err)
	}
	return nil
}

func (r *PgxProposalRepository) ListProposalEvents(ctx context.Context, proposalID string) ([]domain.ProposalEvent, error) {
	query := `
        SELECT event_id, proposal_id, actor_id, event_type, payload, created_at
        FROM proposal_events
        WHERE proposal_id = $1
        ORDER BY created_at ASC, event_id ASC;
    `
	rows, err := r.db.Query(ctx, query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for proposal %s: %w", proposalID, err)
	}
	defer rows.Close()

	eventModels := []models.ProposalEvent{}
	for rows.Next() {
		var m models.ProposalEvent
		err := rows.Scan(
			&m.EventID,
			&m.ProposalID,
			&m.ActorID,
			&m.EventType,
			&m.Payload,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal event row: %w", err)
		}
		eventModels = append(eventModels, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating proposal event rows: %w", rows.Err())
	}

	return mapping.ToDomainProposalEventSlice(eventModels), nil
}
