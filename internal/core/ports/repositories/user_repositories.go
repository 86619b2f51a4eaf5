package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/truequeo/trueque_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// ApplyReputationDelta adds the given deltas to the user's tradesClosed
	// and reputationScore counters. Callers must serialize per user unless
	// the implementation applies the delta atomically.
	ApplyReputationDelta(ctx context.Context, userID string, tradesDelta int64, scoreDelta decimal.Decimal) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
