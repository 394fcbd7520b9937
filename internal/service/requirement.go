package service

import (
	"strategy-vault/config"
	"strategy-vault/internal/core/domain"
)

// RequirementBuilder constructs the payment terms a client must satisfy to
// pass the gate. Scheme, network, asset, payee and timeout are deployment
// constants; only the amount varies per resource.
type RequirementBuilder struct {
	scheme            string
	network           string
	asset             string
	payTo             string
	maxTimeoutSeconds int
}

// NewRequirementBuilder creates a builder from the payment configuration.
func NewRequirementBuilder(cfg config.PaymentConfig) *RequirementBuilder {
	return &RequirementBuilder{
		scheme:            cfg.Scheme,
		network:           cfg.Network,
		asset:             cfg.Asset,
		payTo:             cfg.PayTo,
		maxTimeoutSeconds: cfg.MaxTimeoutSeconds,
	}
}

// Build returns a fresh requirement for the given price. Requirements are
// value objects: one per 402 response, never cached or mutated.
func (b *RequirementBuilder) Build(price string) domain.PaymentRequirement {
	return domain.PaymentRequirement{
		Scheme:            b.scheme,
		Network:           b.network,
		MaxAmountRequired: price,
		PayTo:             b.payTo,
		Asset:             b.asset,
		MaxTimeoutSeconds: b.maxTimeoutSeconds,
	}
}

// PayTo returns the configured payee address.
func (b *RequirementBuilder) PayTo() string {
	return b.payTo
}
