package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"strategy-vault/config"
	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"
	"strategy-vault/pkg/apperror"

	"github.com/rs/zerolog"
)

// X402Verifier implements ports.PaymentVerifier. Verification is a single
// forward pass over the submitted header: transport decode, structural
// parse, version/scheme/network match, replay test-and-set, settlement
// check. The first failing step decides the rejection; nothing is retried.
type X402Verifier struct {
	scheme     string
	network    string
	replayTTL  time.Duration
	ledger     ports.ReplayLedger
	settlement ports.SettlementVerifier
	log        zerolog.Logger
}

// NewX402Verifier creates a verifier bound to the deployment's scheme and
// network, the shared replay ledger and a settlement backend.
func NewX402Verifier(
	cfg config.PaymentConfig,
	ledger ports.ReplayLedger,
	settlement ports.SettlementVerifier,
	log zerolog.Logger,
) *X402Verifier {
	return &X402Verifier{
		scheme:     cfg.Scheme,
		network:    cfg.Network,
		replayTTL:  cfg.ReplayTTL,
		ledger:     ledger,
		settlement: settlement,
		log:        log,
	}
}

// Verify checks a raw X-Payment header value against the expected payee
// and amount. On acceptance the proof identity has been consumed: an
// identical proof can never be accepted again.
func (v *X402Verifier) Verify(ctx context.Context, header string, expectedPayee string, expectedAmount string) (*domain.PaymentPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return nil, apperror.ErrMalformedEncoding(err)
	}

	var payload domain.PaymentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperror.ErrMalformedPayload(err)
	}

	if payload.X402Version != domain.X402Version1 {
		return nil, apperror.ErrUnsupportedVersion(payload.X402Version)
	}
	if payload.Scheme != v.scheme {
		return nil, apperror.ErrUnsupportedScheme(payload.Scheme)
	}
	if payload.Network != v.network {
		return nil, apperror.ErrUnsupportedNetwork(payload.Network)
	}

	// A proof without a settlement reference has no collision-resistant
	// identity, so it cannot participate in replay detection. Reject it
	// instead of deriving an identity from wall-clock time.
	if !payload.HasSettlementRef() {
		return nil, apperror.ErrMissingSettlementRef()
	}

	// Single concurrency-critical step: for two concurrent proofs with
	// the same identity exactly one CheckAndSet observes "new".
	fresh, err := v.ledger.CheckAndSet(ctx, payload.ProofID(), v.replayTTL)
	if err != nil {
		return nil, apperror.ErrLedgerUnavailable(err)
	}
	if !fresh {
		return nil, apperror.ErrReplayedProof()
	}

	if err := v.settlement.CheckSettlement(ctx, &payload, expectedPayee, expectedAmount); err != nil {
		// The identity stays consumed: a proof whose settlement check
		// failed is burned, the client must obtain a fresh one.
		v.log.Warn().
			Str("proof_id", payload.ProofID()).
			Err(err).
			Msg("settlement verification rejected proof")
		return nil, apperror.ErrSettlementRejected(err)
	}

	v.log.Info().
		Str("proof_id", payload.ProofID()).
		Str("payer", payload.Payload.PayerAddress).
		Str("amount", expectedAmount).
		Msg("payment proof accepted")

	return &payload, nil
}
