package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	portssvc "github.com/truequeo/trueque_backend/internal/core/ports/services"
	"github.com/truequeo/trueque_backend/internal/middleware"
	"github.com/truequeo/trueque_backend/internal/utils/locking"
)

var reputationIncrement = decimal.NewFromInt(1)

// reputationService applies the counters owed to a participant when one of
// their trades closes CONFIRMED. Writes for a given user are serialized
// through a keyed mutex so concurrent closures touching the same user never
// interleave their read-modify-write cycles.
type reputationService struct {
	userRepo  portsrepo.UserRepositoryFacade
	userLocks *locking.KeyedMutex
}

// NewReputationService creates a new ReputationSvc.
func NewReputationService(userRepo portsrepo.UserRepositoryFacade) portssvc.ReputationSvc {
	return &reputationService{
		userRepo:  userRepo,
		userLocks: locking.NewKeyedMutex(),
	}
}

// Ensure reputationService implements the portssvc.ReputationSvc interface
var _ portssvc.ReputationSvc = (*reputationService)(nil)

// Bump increments the user's closed-trade count and reputation score by one
// each. Callers invoke it exactly once per participant per confirmed trade.
// Implements portssvc.ReputationSvc
func (s *reputationService) Bump(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	unlock := s.userLocks.Lock(userID)
	defer unlock()

	if err := s.userRepo.ApplyReputationDelta(ctx, userID, 1, reputationIncrement); err != nil {
		return fmt.Errorf("failed to apply reputation delta for user %s: %w", userID, err)
	}

	logger.Info("Reputation updated", slog.String("user_id", userID))
	return nil
}
