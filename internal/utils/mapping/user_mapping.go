package mapping

import (
	"github.com/truequeo/trueque_backend/internal/core/domain"
	"github.com/truequeo/trueque_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:          d.UserID,
		Name:            d.Name,
		TradesClosed:    d.TradesClosed,
		ReputationScore: d.ReputationScore,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:          m.UserID,
		Name:            m.Name,
		TradesClosed:    m.TradesClosed,
		ReputationScore: m.ReputationScore,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
