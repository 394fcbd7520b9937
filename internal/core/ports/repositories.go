package ports

import (
	"context"
	"time"

	"strategy-vault/internal/core/domain"
)

// StrategyCatalog is the read-only catalog of offerings. Runtime-immutable,
// so implementations need no locking.
type StrategyCatalog interface {
	// List returns all strategies in catalog order.
	List() []domain.Strategy
	// GetByID returns the strategy or nil when the id is unknown.
	GetByID(id string) *domain.Strategy
}

// ReplayLedger is the process-wide record of consumed proof identities.
// It is the only shared mutable state in the payment core.
type ReplayLedger interface {
	// CheckAndSet atomically checks whether identity was already consumed
	// and records it if not. Returns true if the identity is new (the
	// proof may be accepted), false if it was already present (replay).
	// For concurrent calls with the same identity exactly one caller
	// observes true. A ttl of zero means the entry never expires.
	CheckAndSet(ctx context.Context, identity string, ttl time.Duration) (bool, error)
}

// PurchaseRepository persists admitted paid accesses.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	List(ctx context.Context, params PurchaseListParams) ([]domain.Purchase, int64, error)
	GetStats(ctx context.Context) (*PurchaseStats, error)
}

// PurchaseListParams holds filter + pagination for listing purchases.
type PurchaseListParams struct {
	StrategyID string // empty = all strategies
	Page       int
	PageSize   int
}

// PurchaseStats holds aggregated purchase counters for the dashboard.
type PurchaseStats struct {
	TotalPurchases int64
	UniquePayers   int64
	TotalRevenue   string // USDC, decimal string
}

// WalletRepository persists provisioned wallets, keyed by user id.
type WalletRepository interface {
	Get(ctx context.Context, userID string) (*domain.Wallet, error)
	// Put stores the wallet unless one already exists for the user, in
	// which case the existing record is returned with created=false.
	Put(ctx context.Context, wallet *domain.Wallet) (*domain.Wallet, bool, error)
}
