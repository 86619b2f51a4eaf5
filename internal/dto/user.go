package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/truequeo/trueque_backend/internal/core/domain"
)

// CreateUserRequest is the request body for provisioning a user. The id is
// issued by the identity service and carried over as-is.
type CreateUserRequest struct {
	UserID string `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID          string          `json:"userId"`
	Name            string          `json:"name"`
	TradesClosed    int64           `json:"tradesClosed"`
	ReputationScore decimal.Decimal `json:"reputationScore"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToUserResponse converts a domain User to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:          u.UserID,
		Name:            u.Name,
		TradesClosed:    u.TradesClosed,
		ReputationScore: u.ReputationScore,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
