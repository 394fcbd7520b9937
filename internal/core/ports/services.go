package ports

import (
	"context"
	"time"

	"strategy-vault/internal/core/domain"
)

// PaymentVerifier parses a client-submitted payment header and decides,
// exactly once per proof identity, whether it satisfies the expected
// payment. Rejections are definitive *apperror.AppError values; there is
// no retry path for a submitted proof.
type PaymentVerifier interface {
	Verify(ctx context.Context, header string, expectedPayee string, expectedAmount string) (*domain.PaymentPayload, error)
}

// SettlementVerifier checks that a structurally valid payload is backed by
// a real settlement paying expectedAmount to expectedPayee. The demo
// implementation accepts every structurally valid proof; a production
// deployment plugs a facilitator or on-chain lookup in here.
type SettlementVerifier interface {
	CheckSettlement(ctx context.Context, payload *domain.PaymentPayload, expectedPayee string, expectedAmount string) error
}

// WalletService provisions demo wallets, idempotent per user id.
type WalletService interface {
	// Provision returns the user's wallet, creating one on first call.
	// The bool reports whether a new wallet was created.
	Provision(ctx context.Context, userID string) (*domain.Wallet, bool, error)
	Get(ctx context.Context, userID string) (*domain.Wallet, error)
}

// AuthService authenticates the dashboard operator.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// TokenService handles JWT token operations for the operator dashboard.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}

// HashService verifies operator passwords (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// ReportingService exposes purchase history to the operator dashboard.
type ReportingService interface {
	ListPurchases(ctx context.Context, params PurchaseListParams) ([]domain.Purchase, int64, error)
	GetStats(ctx context.Context) (*PurchaseStats, error)
}
