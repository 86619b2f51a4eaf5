package recordstorerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/truequeo/trueque_backend/internal/apperrors"
	"github.com/truequeo/trueque_backend/internal/core/domain"
	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	"github.com/truequeo/trueque_backend/internal/models"
	"github.com/truequeo/trueque_backend/internal/utils/mapping"
	"github.com/truequeo/trueque_backend/pkg/recordstore"
)

const (
	tradeCollection   = "Trade"
	closureCollection = "CierreTrueque"
)

// TradeRepository implements the trade repository ports on the record store.
// Transitions are read-modify-write; the service layer guarantees only one
// writer per trade id at a time.
type TradeRepository struct {
	client *recordstore.Client
}

// NewTradeRepository creates a new TradeRepository.
func NewTradeRepository(client *recordstore.Client) *TradeRepository {
	return &TradeRepository{client: client}
}

// Ensure TradeRepository implements the repository facades
var (
	_ portsrepo.TradeRepositoryFacade   = (*TradeRepository)(nil)
	_ portsrepo.ClosureRepositoryFacade = (*TradeRepository)(nil)
)

// FindTradeByID implements portsrepo.TradeReader
func (r *TradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	var model models.Trade
	if err := r.client.Get(ctx, tradeCollection, tradeID, &model); err != nil {
		return nil, translateErr(err, "trade "+tradeID)
	}
	trade := mapping.ToDomainTrade(model)
	return &trade, nil
}

// SaveTrade implements portsrepo.TradeWriter
func (r *TradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	model := mapping.ToModelTrade(trade)
	if err := r.client.Insert(ctx, tradeCollection, model.TradeID, model); err != nil {
		return translateErr(err, "trade "+model.TradeID)
	}
	return nil
}

// SetPartyConfirmed implements portsrepo.TradeWriter
func (r *TradeRepository) SetPartyConfirmed(ctx context.Context, tradeID string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error) {
	var model models.Trade
	if err := r.client.Get(ctx, tradeCollection, tradeID, &model); err != nil {
		return nil, translateErr(err, "trade "+tradeID)
	}

	switch party {
	case domain.PartyProposer:
		model.ProposerConfirmed = true
	case domain.PartyResponder:
		model.ResponderConfirmed = true
	default:
		return nil, fmt.Errorf("unknown trade party %q", party)
	}
	model.UpdatedAt = updatedAt

	if err := r.client.Update(ctx, tradeCollection, tradeID, model); err != nil {
		return nil, translateErr(err, "trade "+tradeID)
	}
	trade := mapping.ToDomainTrade(model)
	return &trade, nil
}

// CloseTrade implements portsrepo.TradeWriter
func (r *TradeRepository) CloseTrade(ctx context.Context, tradeID string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error) {
	var model models.Trade
	if err := r.client.Get(ctx, tradeCollection, tradeID, &model); err != nil {
		return nil, translateErr(err, "trade "+tradeID)
	}

	if domain.TradeStatus(model.Status).IsTerminal() {
		return nil, fmt.Errorf("%w: trade is already %s", apperrors.ErrConflict, model.Status)
	}

	model.Status = string(status)
	model.ClosedAt = &closedAt
	model.UpdatedAt = closedAt
	// A cancellation voids any half-given consent.
	if status == domain.TradeStatusCancelled {
		model.ProposerConfirmed = false
		model.ResponderConfirmed = false
	}

	if err := r.client.Update(ctx, tradeCollection, tradeID, model); err != nil {
		return nil, translateErr(err, "trade "+tradeID)
	}
	trade := mapping.ToDomainTrade(model)
	return &trade, nil
}

// FindClosureByTradeID implements portsrepo.ClosureReader
func (r *TradeRepository) FindClosureByTradeID(ctx context.Context, tradeID string) (*domain.TradeClosure, error) {
	var model models.TradeClosure
	if err := r.client.Get(ctx, closureCollection, tradeID, &model); err != nil {
		return nil, translateErr(err, "closure for trade "+tradeID)
	}
	closure := mapping.ToDomainTradeClosure(model)
	return &closure, nil
}

// SaveClosureIfAbsent implements portsrepo.ClosureWriter
func (r *TradeRepository) SaveClosureIfAbsent(ctx context.Context, closure domain.TradeClosure) (*domain.TradeClosure, error) {
	model := mapping.ToModelTradeClosure(closure)
	err := r.client.Insert(ctx, closureCollection, model.TradeID, model)
	if err == nil {
		return &closure, nil
	}
	// An existing record wins; hand it back untouched.
	if errors.Is(err, recordstore.ErrConflict) {
		return r.FindClosureByTradeID(ctx, closure.TradeID)
	}
	return nil, translateErr(err, "closure for trade "+closure.TradeID)
}
