package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all Postgres-backed repositories over one
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	tradeRepo := newPgxTradeRepository(pool)
	return portsrepo.RepositoryProvider{
		TradeRepo:    tradeRepo,
		ClosureRepo:  tradeRepo,
		UserRepo:     newPgxUserRepository(pool),
		ProposalRepo: newPgxProposalRepository(pool),
	}
}
