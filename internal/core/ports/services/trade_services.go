package services

import (
	"context"

	"github.com/truequeo/trueque_backend/internal/core/domain"
	"github.com/truequeo/trueque_backend/internal/dto"
)

// TradeSvcFacade is the confirmation state machine for trades. All
// transitions on a given trade id behave as if executed under a mutual
// exclusion lock scoped to that trade.
type TradeSvcFacade interface {
	// CreateTrade validates and persists a new PENDING trade. Fails with
	// ErrValidation on self-trades or unparseable offer payloads, before any
	// write.
	CreateTrade(ctx context.Context, req dto.CreateTradeRequest) (*domain.Trade, error)

	// GetTrade retrieves a trade by id.
	GetTrade(ctx context.Context, tradeID string) (*domain.Trade, error)

	// Confirm records actorID's decision on a PENDING trade. accept=false
	// cancels the trade immediately regardless of the other party's state;
	// accept=true sets the actor's confirmation flag and, once both flags
	// are set, closes the trade as CONFIRMED, records the closure and bumps
	// both participants' reputation.
	Confirm(ctx context.Context, tradeID string, actorID string, accept bool) (*domain.Trade, error)

	// Cancel is the message-free shortcut for Confirm(accept=false).
	Cancel(ctx context.Context, tradeID string, actorID string) (*domain.Trade, error)

	// GetClosure retrieves the closure record of a trade. ErrNotFound while
	// the trade is still PENDING or does not exist.
	GetClosure(ctx context.Context, tradeID string) (*domain.TradeClosure, error)
}

// ClosureRecorder writes the one immutable closure record of a trade.
type ClosureRecorder interface {
	// RecordClosure creates the closure record for a trade if absent and
	// returns the stored record. Safe to retry: repeat calls return the
	// existing record untouched.
	RecordClosure(ctx context.Context, trade domain.Trade, finalStatus domain.TradeStatus) (*domain.TradeClosure, error)
}

// ReputationSvc applies the exactly-once counter bumps owed to each
// participant of a successfully confirmed trade.
type ReputationSvc interface {
	// Bump increments the user's tradesClosed and reputationScore by one,
	// serialized per user id.
	Bump(ctx context.Context, userID string) error
}
