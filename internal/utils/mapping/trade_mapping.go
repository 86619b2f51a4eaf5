package mapping

import (
	"github.com/truequeo/trueque_backend/internal/core/domain"
	"github.com/truequeo/trueque_backend/internal/models"
)

// ToModelTrade converts a domain Trade to a model Trade
func ToModelTrade(d domain.Trade) models.Trade {
	return models.Trade{
		TradeID:            d.TradeID,
		ProposerID:         d.ProposerID,
		ResponderID:        d.ResponderID,
		ProposerOffer:      d.ProposerOffer,
		ResponderOffer:     d.ResponderOffer,
		ProposerConfirmed:  d.ProposerConfirmed,
		ResponderConfirmed: d.ResponderConfirmed,
		Status:             string(d.Status),
		ClosedAt:           d.ClosedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTrade converts a model Trade to a domain Trade
func ToDomainTrade(m models.Trade) domain.Trade {
	return domain.Trade{
		TradeID:            m.TradeID,
		ProposerID:         m.ProposerID,
		ResponderID:        m.ResponderID,
		ProposerOffer:      m.ProposerOffer,
		ResponderOffer:     m.ResponderOffer,
		ProposerConfirmed:  m.ProposerConfirmed,
		ResponderConfirmed: m.ResponderConfirmed,
		Status:             domain.TradeStatus(m.Status),
		ClosedAt:           m.ClosedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTradeClosure converts a domain TradeClosure to a model TradeClosure
func ToModelTradeClosure(d domain.TradeClosure) models.TradeClosure {
	return models.TradeClosure{
		TradeID:     d.TradeID,
		ProposerID:  d.ProposerID,
		ResponderID: d.ResponderID,
		OfferA:      d.OfferA,
		OfferB:      d.OfferB,
		FinalStatus: string(d.FinalStatus),
		ClosedAt:    d.ClosedAt,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainTradeClosure converts a model TradeClosure to a domain TradeClosure
func ToDomainTradeClosure(m models.TradeClosure) domain.TradeClosure {
	return domain.TradeClosure{
		TradeID:     m.TradeID,
		ProposerID:  m.ProposerID,
		ResponderID: m.ResponderID,
		OfferA:      m.OfferA,
		OfferB:      m.OfferB,
		FinalStatus: domain.TradeStatus(m.FinalStatus),
		ClosedAt:    m.ClosedAt,
		CreatedAt:   m.CreatedAt,
	}
}
