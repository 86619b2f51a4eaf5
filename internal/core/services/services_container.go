package services

import (
	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	portssvc "github.com/truequeo/trueque_backend/internal/core/ports/services"
)

// NewServiceContainer wires all application services over the given
// repositories.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	closure := NewClosureLedger(repos.ClosureRepo)
	reputation := NewReputationService(repos.UserRepo)
	trade := NewTradeService(repos.TradeRepo, repos.ClosureRepo, closure, reputation)
	proposal := NewProposalService(repos.ProposalRepo)
	user := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		Trade:      trade,
		Proposal:   proposal,
		User:       user,
		Closure:    closure,
		Reputation: reputation,
	}
}
