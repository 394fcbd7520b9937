package integration

import (
	"context"
	"math/big"
	"sync"

	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"
)

// purchaseStore is an in-memory ports.PurchaseRepository for integration
// tests, standing in for the PostgreSQL repository.
type purchaseStore struct {
	mu    sync.Mutex
	items []domain.Purchase
}

func newPurchaseStore() *purchaseStore {
	return &purchaseStore{}
}

func (s *purchaseStore) Create(_ context.Context, purchase *domain.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *purchase)
	return nil
}

func (s *purchaseStore) List(_ context.Context, params ports.PurchaseListParams) ([]domain.Purchase, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest first: items were appended in creation order.
	filtered := make([]domain.Purchase, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		if params.StrategyID != "" && s.items[i].StrategyID != params.StrategyID {
			continue
		}
		filtered = append(filtered, s.items[i])
	}

	total := int64(len(filtered))
	start := (params.Page - 1) * params.PageSize
	if start >= len(filtered) {
		return []domain.Purchase{}, total, nil
	}
	end := start + params.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func (s *purchaseStore) GetStats(_ context.Context) (*ports.PurchaseStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payers := make(map[string]struct{})
	revenue := new(big.Rat)
	for _, p := range s.items {
		payers[p.PayerAddress] = struct{}{}
		if amount, ok := new(big.Rat).SetString(p.Amount); ok {
			revenue.Add(revenue, amount)
		}
	}

	return &ports.PurchaseStats{
		TotalPurchases: int64(len(s.items)),
		UniquePayers:   int64(len(payers)),
		TotalRevenue:   revenue.FloatString(2),
	}, nil
}
