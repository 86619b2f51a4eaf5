package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/truequeo/trueque_backend/internal/core/domain"
	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	portssvc "github.com/truequeo/trueque_backend/internal/core/ports/services"
	"github.com/truequeo/trueque_backend/internal/middleware"
)

// closureLedger writes the immutable closure record for a trade that has
// reached a terminal status. It is keyed by trade id, so repeated calls for
// the same trade are absorbed by the storage layer's create-if-absent write.
type closureLedger struct {
	closureRepo portsrepo.ClosureRepositoryFacade
}

// NewClosureLedger creates a new ClosureRecorder.
func NewClosureLedger(closureRepo portsrepo.ClosureRepositoryFacade) portssvc.ClosureRecorder {
	return &closureLedger{closureRepo: closureRepo}
}

// Ensure closureLedger implements the portssvc.ClosureRecorder interface
var _ portssvc.ClosureRecorder = (*closureLedger)(nil)

// RecordClosure persists a snapshot of the trade's offers at closure time.
// If a record already exists for the trade id the existing record is
// returned untouched.
// Implements portssvc.ClosureRecorder
func (l *closureLedger) RecordClosure(ctx context.Context, trade domain.Trade, finalStatus domain.TradeStatus) (*domain.TradeClosure, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	closedAt := time.Now().UTC()
	if trade.ClosedAt != nil {
		closedAt = *trade.ClosedAt
	}

	closure := domain.TradeClosure{
		TradeID:     trade.TradeID,
		ProposerID:  trade.ProposerID,
		ResponderID: trade.ResponderID,
		OfferA:      trade.ProposerOffer,
		OfferB:      trade.ResponderOffer,
		FinalStatus: finalStatus,
		ClosedAt:    closedAt,
		CreatedAt:   time.Now().UTC(),
	}

	stored, err := l.closureRepo.SaveClosureIfAbsent(ctx, closure)
	if err != nil {
		return nil, fmt.Errorf("failed to record closure for trade %s: %w", trade.TradeID, err)
	}

	logger.Info("Closure recorded",
		slog.String("trade_id", trade.TradeID),
		slog.String("final_status", string(stored.FinalStatus)))
	return stored, nil
}
