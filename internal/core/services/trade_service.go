package services

import (
	"context"
	"encoding/json"
	"errors"
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

// closeCompletionTimeout bounds the follow-up work (closure record,
// reputation bumps) that runs after a trade has durably left PENDING. The
// caller's deadline no longer applies at that point.
const closeCompletionTimeout = 30 * time.Second

// dependentWriteAttempts is how often an idempotent dependent write is
// retried before being left to the logs.
const dependentWriteAttempts = 3

// tradeService enforces the trade lifecycle and the two-party confirmation
// protocol. All mutations of a given trade are serialized through a keyed
// mutex so the read-flag-write-recheck-close sequence behaves as one atomic
// unit per trade id.
type tradeService struct {
	tradeRepo   portsrepo.TradeRepositoryFacade
	closureRepo portsrepo.ClosureRepositoryFacade
	closureSvc  portssvc.ClosureRecorder
	reputation  portssvc.ReputationSvc
	tradeLocks  *locking.KeyedMutex
}

// NewTradeService creates a new TradeService.
func NewTradeService(
	tradeRepo portsrepo.TradeRepositoryFacade,
	closureRepo portsrepo.ClosureRepositoryFacade,
	closureSvc portssvc.ClosureRecorder,
	reputation portssvc.ReputationSvc,
) portssvc.TradeSvcFacade {
	return &tradeService{
		tradeRepo:   tradeRepo,
		closureRepo: closureRepo,
		closureSvc:  closureSvc,
		reputation:  reputation,
		tradeLocks:  locking.NewKeyedMutex(),
	}
}

// Ensure tradeService implements the portssvc.TradeSvcFacade interface
var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

// parseOffer checks that the raw payload is syntactically valid JSON. The
// structure itself belongs to the offer-management service and is never
// interpreted here.
func parseOffer(raw string, side string) (json.RawMessage, error) {
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("%w: %s offer payload is not valid JSON", apperrors.ErrValidation, side)
	}
	return json.RawMessage(raw), nil
}

// CreateTrade validates and persists a new PENDING trade.
// Implements portssvc.TradeSvcFacade
func (s *tradeService) CreateTrade(ctx context.Context, req dto.CreateTradeRequest) (*domain.Trade, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ProposerID == req.ResponderID {
		return nil, fmt.Errorf("%w: cannot open a trade with yourself", apperrors.ErrValidation)
	}

	proposerOffer, err := parseOffer(req.ProposerOfferJSON, "proposer")
	if err != nil {
		return nil, err
	}
	responderOffer, err := parseOffer(req.ResponderOfferJSON, "responder")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trade := domain.Trade{
		TradeID:        uuid.NewString(),
		ProposerID:     req.ProposerID,
		ResponderID:    req.ResponderID,
		ProposerOffer:  proposerOffer,
		ResponderOffer: responderOffer,
		Status:         domain.TradeStatusPending,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.tradeRepo.SaveTrade(ctx, trade); err != nil {
		logger.Error("Failed to save trade", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save trade: %w", err)
	}

	logger.Info("Trade created", slog.String("trade_id", trade.TradeID))
	return &trade, nil
}

// GetTrade retrieves a trade by id.
// Implements portssvc.TradeSvcFacade
func (s *tradeService) GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error) {
	trade, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trade %s: %w", tradeID, err)
	}
	return trade, nil
}

// Confirm records one party's decision on a PENDING trade.
//
// The whole sequence runs under the trade's lock: without it, two concurrent
// accepts could each read "not yet both confirmed" and neither would close
// the trade, leaving it stuck PENDING with both flags set.
// Implements portssvc.TradeSvcFacade
func (s *tradeService) Confirm(ctx context.Context, tradeID string, actorID string, accept bool) (*domain.Trade, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.tradeLocks.Lock(tradeID)
	defer unlock()

	trade, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trade %s: %w", tradeID, err)
	}

	party, isParty := trade.PartyOf(actorID)
	if !isParty {
		return nil, fmt.Errorf("%w: user %s is not a party to this trade", apperrors.ErrForbidden, actorID)
	}

	if trade.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: trade is already %s", apperrors.ErrConflict, trade.Status)
	}

	// All validation is done; abort on an expired deadline before the first
	// write rather than mid-sequence.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Rejection by either side kills the trade immediately, discarding any
	// partial confirmation by the other party.
	if !accept {
		cancelled, err := s.tradeRepo.CloseTrade(ctx, tradeID, domain.TradeStatusCancelled, now)
		if err != nil {
			logger.Error("Failed to cancel trade", slog.String("trade_id", tradeID), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to cancel trade %s: %w", tradeID, err)
		}
		s.completeClosure(ctx, *cancelled, domain.TradeStatusCancelled)
		logger.Info("Trade cancelled", slog.String("trade_id", tradeID), slog.String("actor_id", actorID))
		return cancelled, nil
	}

	updated, err := s.tradeRepo.SetPartyConfirmed(ctx, tradeID, party, now)
	if err != nil {
		logger.Error("Failed to set confirmation flag", slog.String("trade_id", tradeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to confirm trade %s: %w", tradeID, err)
	}

	if !updated.BothConfirmed() {
		logger.Info("Trade confirmation recorded, awaiting other party",
			slog.String("trade_id", tradeID), slog.String("actor_id", actorID))
		return updated, nil
	}

	closed, err := s.tradeRepo.CloseTrade(ctx, tradeID, domain.TradeStatusConfirmed, now)
	if err != nil {
		logger.Error("Failed to close confirmed trade", slog.String("trade_id", tradeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to close trade %s: %w", tradeID, err)
	}
	s.completeClosure(ctx, *closed, domain.TradeStatusConfirmed)
	logger.Info("Trade confirmed by both parties", slog.String("trade_id", tradeID))
	return closed, nil
}

// Cancel is the message-free shortcut for Confirm(accept=false).
// Implements portssvc.TradeSvcFacade
func (s *tradeService) Cancel(ctx context.Context, tradeID string, actorID string) (*domain.Trade, error) {
	return s.Confirm(ctx, tradeID, actorID, false)
}

// GetClosure retrieves the closure record of a trade.
// Implements portssvc.TradeSvcFacade
func (s *tradeService) GetClosure(ctx context.Context, tradeID string) (*domain.TradeClosure, error) {
	closure, err := s.closureRepo.FindClosureByTradeID(ctx, tradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find closure for trade %s: %w", tradeID, err)
	}
	return closure, nil
}

// completeClosure runs the dependent writes owed once a trade has durably
// left PENDING: the closure record and, for confirmations, both reputation
// bumps. The status transition is already committed, so failures here are
// retried and logged but never surfaced as a failed confirm; the writes are
// idempotent by construction (create-if-absent closure, single bump call per
// participant per transition).
func (s *tradeService) completeClosure(ctx context.Context, trade domain.Trade, finalStatus domain.TradeStatus) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// The caller's deadline no longer applies: once closed, the trade must
	// be followed through, not left half-closed.
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeCompletionTimeout)
	defer cancel()

	if err := retryIdempotent(dctx, func() error {
		_, err := s.closureSvc.RecordClosure(dctx, trade, finalStatus)
		return err
	}); err != nil {
		logger.Error("Closure record still missing after retries",
			slog.String("trade_id", trade.TradeID), slog.String("error", err.Error()))
	}

	if finalStatus != domain.TradeStatusConfirmed {
		return
	}

	for _, userID := range []string{trade.ProposerID, trade.ResponderID} {
		uid := userID
		if err := retryIdempotent(dctx, func() error {
			return s.reputation.Bump(dctx, uid)
		}); err != nil {
			logger.Error("Reputation bump still pending after retries",
				slog.String("trade_id", trade.TradeID), slog.String("user_id", uid), slog.String("error", err.Error()))
		}
	}
}

// retryIdempotent retries fn on ErrUnavailable with a short linear backoff.
// Any other error is returned immediately; only idempotent steps may be
// passed here.
func retryIdempotent(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= dependentWriteAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, apperrors.ErrUnavailable) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
		}
	}
	return err
}
