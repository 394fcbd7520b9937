package memory

import (
	"context"
	"sync"

	"strategy-vault/internal/core/domain"
)

// WalletRepo implements ports.WalletRepository with a mutex-guarded map.
// Demo wallets are ephemeral per process, matching their trust level.
type WalletRepo struct {
	mu      sync.RWMutex
	wallets map[string]domain.Wallet // keyed by user id
}

// NewWalletRepo creates an empty in-memory wallet repository.
func NewWalletRepo() *WalletRepo {
	return &WalletRepo{wallets: make(map[string]domain.Wallet)}
}

// Get returns the user's wallet or nil when none exists.
func (r *WalletRepo) Get(_ context.Context, userID string) (*domain.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.wallets[userID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

// Put stores the wallet unless one already exists for the user. The
// insert-if-absent happens under one lock, so concurrent provisioning for
// the same user converges on a single record.
func (r *WalletRepo) Put(_ context.Context, wallet *domain.Wallet) (*domain.Wallet, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.wallets[wallet.UserID]; ok {
		return &existing, false, nil
	}
	r.wallets[wallet.UserID] = *wallet
	stored := *wallet
	return &stored, true, nil
}
