package service

import (
	"context"
	"fmt"

	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"
	"strategy-vault/pkg/apperror"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ReportingServiceImpl implements ports.ReportingService over the purchase
// repository.
type ReportingServiceImpl struct {
	purchaseRepo ports.PurchaseRepository
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(purchaseRepo ports.PurchaseRepository) *ReportingServiceImpl {
	return &ReportingServiceImpl{purchaseRepo: purchaseRepo}
}

// ListPurchases returns a page of purchases, newest first.
func (s *ReportingServiceImpl) ListPurchases(ctx context.Context, params ports.PurchaseListParams) ([]domain.Purchase, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}

	items, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list purchases: %w", err))
	}
	return items, total, nil
}

// GetStats returns aggregate purchase counters.
func (s *ReportingServiceImpl) GetStats(ctx context.Context) (*ports.PurchaseStats, error) {
	stats, err := s.purchaseRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("purchase stats: %w", err))
	}
	return stats, nil
}
