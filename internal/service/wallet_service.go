package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"
	"strategy-vault/pkg/apperror"

	"github.com/rs/zerolog"
)

// WalletServiceImpl implements ports.WalletService. It provisions demo
// wallets with locally generated addresses; a custodial backend would
// replace the address generation, not the idempotency contract.
type WalletServiceImpl struct {
	repo    ports.WalletRepository
	network string
	log     zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(repo ports.WalletRepository, network string, log zerolog.Logger) *WalletServiceImpl {
	return &WalletServiceImpl{repo: repo, network: network, log: log}
}

// Provision returns the user's wallet, creating one on first call. Repeat
// calls for the same user return the original record.
func (s *WalletServiceImpl) Provision(ctx context.Context, userID string) (*domain.Wallet, bool, error) {
	if userID == "" {
		return nil, false, apperror.Validation("user_id is required")
	}

	address, err := generateAddress()
	if err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("generate wallet address: %w", err))
	}

	candidate := &domain.Wallet{
		UserID:    userID,
		Address:   address,
		WalletID:  "demo-" + userID,
		Network:   s.network,
		IsDemo:    true,
		CreatedAt: time.Now().UTC(),
	}

	// Put resolves the race between two first calls for the same user:
	// whichever insert wins, both callers get the same stored record.
	wallet, created, err := s.repo.Put(ctx, candidate)
	if err != nil {
		return nil, false, apperror.InternalError(fmt.Errorf("store wallet: %w", err))
	}

	if created {
		s.log.Info().
			Str("user_id", userID).
			Str("address", wallet.Address).
			Str("network", wallet.Network).
			Msg("demo wallet provisioned")
	}

	return wallet, created, nil
}

// Get returns the user's wallet or WAL_001 when none exists.
func (s *WalletServiceImpl) Get(ctx context.Context, userID string) (*domain.Wallet, error) {
	wallet, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// generateAddress returns a random 20-byte hex address with 0x prefix.
func generateAddress() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(buf), nil
}
