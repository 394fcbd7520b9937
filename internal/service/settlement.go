package service

import (
	"context"

	"strategy-vault/internal/core/domain"

	"github.com/rs/zerolog"
)

// StructuralSettlement implements ports.SettlementVerifier by accepting
// every structurally valid proof. It performs no facilitator call and no
// on-chain lookup: structural validity plus replay protection is the whole
// demo trust model. Deployments with real money swap in an implementation
// that checks the settlement transaction against payee and amount.
type StructuralSettlement struct {
	log zerolog.Logger
}

// NewStructuralSettlement creates the demo settlement verifier.
func NewStructuralSettlement(log zerolog.Logger) *StructuralSettlement {
	return &StructuralSettlement{log: log}
}

// CheckSettlement logs the claim and accepts it.
func (s *StructuralSettlement) CheckSettlement(ctx context.Context, payload *domain.PaymentPayload, expectedPayee string, expectedAmount string) error {
	s.log.Debug().
		Str("tx_hash", payload.Payload.TxHash).
		Str("expected_payee", expectedPayee).
		Str("expected_amount", expectedAmount).
		Msg("structural settlement check: accepting without on-chain verification")
	return nil
}
