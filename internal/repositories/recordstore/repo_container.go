package recordstorerepo

import (
	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	"github.com/truequeo/trueque_backend/pkg/recordstore"
)

// NewRepositoryProvider wires all record-store-backed repositories over one
// shared client.
func NewRepositoryProvider(client *recordstore.Client) portsrepo.RepositoryProvider {
	tradeRepo := NewTradeRepository(client)
	return portsrepo.RepositoryProvider{
		TradeRepo:    tradeRepo,
		ClosureRepo:  tradeRepo,
		UserRepo:     NewUserRepository(client),
		ProposalRepo: NewProposalRepository(client),
	}
}
