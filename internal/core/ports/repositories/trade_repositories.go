package repositories

import (
	"context"
	"time"

	"github.com/truequeo/trueque_backend/internal/core/domain"
)

// TradeReader defines read operations for trade data
type TradeReader interface {
	// FindTradeByID retrieves a specific trade by its unique identifier.
	FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error)
}

// TradeWriter defines write operations for trade data.
//
// The service layer serializes confirm/cancel per trade id, so these methods
// never race each other for the same trade within a process. Implementations
// backed by a store with conditional-update support must still guard the
// PENDING -> terminal transition so a trade is never closed twice across
// processes.
type TradeWriter interface {
	// SaveTrade persists a new trade.
	SaveTrade(ctx context.Context, trade domain.Trade) error

	// SetPartyConfirmed marks the given party's confirmation flag true and
	// returns the updated trade. The other party's flag is left untouched.
	SetPartyConfirmed(ctx context.Context, tradeID string, party domain.TradeParty, updatedAt time.Time) (*domain.Trade, error)

	// CloseTrade transitions a PENDING trade to the given terminal status,
	// setting closedAt. A CANCELLED close also clears both confirmation
	// flags. Returns ErrConflict if the trade already left PENDING.
	CloseTrade(ctx context.Context, tradeID string, status domain.TradeStatus, closedAt time.Time) (*domain.Trade, error)
}

// ClosureReader defines read operations for trade closure records
type ClosureReader interface {
	// FindClosureByTradeID retrieves the closure record of a trade, or
	// ErrNotFound if the trade has not closed (or does not exist).
	FindClosureByTradeID(ctx context.Context, tradeID string) (*domain.TradeClosure, error)
}

// ClosureWriter defines the single write operation for closure records
type ClosureWriter interface {
	// SaveClosureIfAbsent creates the closure record for a trade unless one
	// already exists, in which case the existing record is returned
	// unchanged. Closure rows are never updated or deleted.
	SaveClosureIfAbsent(ctx context.Context, closure domain.TradeClosure) (*domain.TradeClosure, error)
}

// TradeRepositoryFacade combines all trade-related repository interfaces
type TradeRepositoryFacade interface {
	TradeReader
	TradeWriter
}

// ClosureRepositoryFacade combines the closure repository interfaces
type ClosureRepositoryFacade interface {
	ClosureReader
	ClosureWriter
}
