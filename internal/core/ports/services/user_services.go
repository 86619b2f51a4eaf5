package services

import (
	"context"

	"github.com/truequeo/trueque_backend/internal/core/domain"
	"github.com/truequeo/trueque_backend/internal/dto"
)

// UserSvcFacade is the read model over marketplace participants plus the
// provisioning hook used when a user first appears. Identity itself is owned
// by the auth service; only the reputation counters live here.
type UserSvcFacade interface {
	// ProvisionUser registers a user with zeroed reputation counters.
	ProvisionUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
