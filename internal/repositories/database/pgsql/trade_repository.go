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

// PgxTradeRepository persists trades and closure records in Postgres. Trade
// state transitions use conditional updates on status so a trade can never be
// closed twice even across processes.
type PgxTradeRepository struct {
	db *pgxpool.Pool
}

func newPgxTradeRepository(db *pgxpool.Pool) *PgxTradeRepository {
	return &PgxTradeRepository{db: db}
}

// Ensure PgxTradeRepository implements the repository facades
var (
	_ portsrepo.TradeRepositoryFacade   = (*PgxTradeRepository)(nil)
	_ portsrepo.ClosureRepositoryFacade = (*PgxTradeRepository)(nil)
)

const tradeColumns = `trade_id, proposer_id, responder_id, proposer_offer, responder_offer,
		proposer_confirmed, responder_confirmed, status, closed_at, created_at, updated_at`

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	var m models.Trade
	err := row.Scan(
		&m.TradeID,
		&m.ProposerID,
		&m.ResponderID,
		&m.ProposerOffer,
		&m.ResponderOffer,
		&m.ProposerConfirmed,
		&m.ResponderConfirmed,
		&m.Status,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	trade := mapping.ToDomainTrade(m)
	return &trade, nil
}

func (r *PgxTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	m := mapping.ToModelTrade(trade)
	query := `
        INSERT INTO trades (trade_id, proposer_id, responder_id, proposer_offer, responder_offer,
            proposer_confirmed, responder_confirmed, status, closed_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.TradeID,
		m.ProposerID,
		m.ResponderID,
		m.ProposerOffer,
		m.ResponderOffer,
		m.ProposerConfirmed,
		m.ResponderConfirmed,
		m.Status,
		m.ClosedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	return nil
}

func (r *PgxTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE trade_id = $1;`
	trade, err := scanTrade(r.db.QueryRow(ctx, query, tradeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trade by ID %s: %w", tradeID, err)
	}
	return trade, nil
}

func (r *PgxTradeRepository) SetPartyConfirmed(ctx context.Context, tradeID string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error) {
	var flagColumn string
	switch party {
	case domain.PartyProposer:
		flagColumn = "proposer_confirmed"
	case domain.PartyResponder:
		flagColumn = "responder_confirmed"
	default:
		return nil, fmt.Errorf("unknown trade party %q", party)
	}

	query := fmt.Sprintf(`
        UPDATE trades
        SET %s = TRUE, updated_at = $1
        WHERE trade_id = $2 AND status = 'PENDING'
        RETURNING `+tradeColumns+`;
    `, flagColumn)

	trade, err := scanTrade(r.db.QueryRow(ctx, query, updatedAt, tradeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissingPending(ctx, tradeID)
		}
		return nil, fmt.Errorf("failed to set confirmation for trade %s: %w", tradeID, err)
	}
	return trade, nil
}

func (r *PgxTradeRepository) CloseTrade(ctx context.Context, tradeID string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error) {
	// CANCELLED wipes both flags so no stale consent survives the close.
	query := `
        UPDATE trades
        SET status = $1,
            closed_at = $2,
            updated_at = $2,
            proposer_confirmed = CASE WHEN $1 = 'CANCELLED' THEN FALSE ELSE proposer_confirmed END,
            responder_confirmed = CASE WHEN $1 = 'CANCELLED' THEN FALSE ELSE responder_confirmed END
        WHERE trade_id = $3 AND status = 'PENDING'
        RETURNING ` + tradeColumns + `;
    `
	trade, err := scanTrade(r.db.QueryRow(ctx, query, string(status), closedAt, tradeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyMissingPending(ctx, tradeID)
		}
		return nil, fmt.Errorf("failed to close trade %s: %w", tradeID, err)
	}
	return trade, nil
}

// classifyMissingPending distinguishes "no such trade" from "trade already
// terminal" after a conditional update matched no rows.
func (r *PgxTradeRepository) classifyMissingPending(ctx context.Context, tradeID string) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM trades WHERE trade_id = $1;`, tradeID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read trade %s status: %w", tradeID, err)
	}
	return fmt.Errorf("%w: trade is already %s", apperrors.ErrConflict, status)
}

func (r *PgxTradeRepository) SaveClosureIfAbsent(ctx context.Context, closure domain.TradeClosure) (*domain.TradeClosure, error) {
	m := mapping.ToModelTradeClosure(closure)
	query := `
        INSERT INTO trade_closures (trade_id, proposer_id, responder_id, offer_a, offer_b,
            final_status, closed_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (trade_id) DO NOTHING;
    `
	_, err := r.db.Exec(ctx, query,
		m.TradeID,
		m.ProposerID,
		m.ResponderID,
		m.OfferA,
		m.OfferB,
		m.FinalStatus,
		m.ClosedAt,
		m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save closure for trade %s: %w", closure.TradeID, err)
	}
	// Read back so a concurrent earlier insert wins.
	return r.FindClosureByTradeID(ctx, closure.TradeID)
}

func (r *PgxTradeRepository) FindClosureByTradeID(ctx context.Context, tradeID string) (*domain.TradeClosure, error) {
	query := `
        SELECT trade_id, proposer_id, responder_id, offer_a, offer_b, final_status, closed_at, created_at
        FROM trade_closures
        WHERE trade_id = $1;
    `
	var m models.TradeClosure
	err := r.db.QueryRow(ctx, query, tradeID).Scan(
		&m.TradeID,
		&m.ProposerID,
		&m.ResponderID,
		&m.OfferA,
		&m.OfferB,
		&m.FinalStatus,
		&m.ClosedAt,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no closure record for trade %s", tradeID))
		}
		return nil, fmt.Errorf("failed to find closure for trade %s: %w", tradeID, err)
	}
	closure := mapping.ToDomainTradeClosure(m)
	return &closure, nil
}
