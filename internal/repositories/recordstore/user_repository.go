package recordstorerepo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/truequeo/trueque_backend/internal/core/domain"
	portsrepo "github.com/truequeo/trueque_backend/internal/core/ports/repositories"
	"github.com/truequeo/trueque_backend/internal/models"
	"github.com/truequeo/trueque_backend/internal/utils/mapping"
	"github.com/truequeo/trueque_backend/pkg/recordstore"
)

const userCollection = "User"

// UserRepository implements the user repository ports on the record store.
// Counter updates are read-modify-write, so callers must hold the per-user
// serialization the reputation service provides.
type UserRepository struct {
	client *recordstore.Client
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(client *recordstore.Client) *UserRepository {
	return &UserRepository{client: client}
}

// Ensure UserRepository implements the portsrepo.UserRepositoryFacade interface
var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

// FindUserByID implements portsrepo.UserReader
func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var model models.User
	if err := r.client.Get(ctx, userCollection, userID, &model); err != nil {
		return nil, translateErr(err, "user "+userID)
	}
	user := mapping.ToDomainUser(model)
	return &user, nil
}

// SaveUser implements portsrepo.UserWriter
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	model := mapping.ToModelUser(user)
	if err := r.client.Insert(ctx, userCollection, model.UserID, model); err != nil {
		return translateErr(err, "user "+model.UserID)
	}
	return nil
}

// ApplyReputationDelta implements portsrepo.UserWriter
func (r *UserRepository) ApplyReputationDelta(ctx context.Context, userID string, tradesDelta int64, scoreDelta decimal.Decimal) error {
	var model models.User
	if err := r.client.Get(ctx, userCollection, userID, &model); err != nil {
		return translateErr(err, "user "+userID)
	}

	model.TradesClosed += tradesDelta
	model.ReputationScore = model.ReputationScore.Add(scoreDelta)
	model.UpdatedAt = time.Now().UTC()

	if err := r.client.Update(ctx, userCollection, userID, model); err != nil {
		return translateErr(err, "user "+userID)
	}
	return nil
}
