package service_test

import (
	"context"
	"errors"
	"testing"

	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"
	"strategy-vault/internal/core/ports/mocks"
	"strategy-vault/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportingService_ListClampsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPurchaseRepository(ctrl)

	// Out-of-range inputs are normalised before they reach storage.
	repo.EXPECT().
		List(gomock.Any(), ports.PurchaseListParams{Page: 1, PageSize: 20}).
		Return(nil, int64(0), nil)
	repo.EXPECT().
		List(gomock.Any(), ports.PurchaseListParams{Page: 3, PageSize: 100}).
		Return(nil, int64(0), nil)

	svc := service.NewReportingService(repo)
	ctx := context.Background()

	_, _, err := svc.ListPurchases(ctx, ports.PurchaseListParams{Page: 0, PageSize: -5})
	require.NoError(t, err)

	_, _, err = svc.ListPurchases(ctx, ports.PurchaseListParams{Page: 3, PageSize: 5000})
	require.NoError(t, err)
}

func TestReportingService_ListPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPurchaseRepository(ctrl)
	repo.EXPECT().
		List(gomock.Any(), ports.PurchaseListParams{StrategyID: "alpha", Page: 2, PageSize: 10}).
		Return([]domain.Purchase{{StrategyID: "alpha"}}, int64(15), nil)

	svc := service.NewReportingService(repo)
	items, total, err := svc.ListPurchases(context.Background(), ports.PurchaseListParams{StrategyID: "alpha", Page: 2, PageSize: 10})

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(15), total)
}

func TestReportingService_ListRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPurchaseRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("db down"))

	svc := service.NewReportingService(repo)
	_, _, err := svc.ListPurchases(context.Background(), ports.PurchaseListParams{})

	assert.Equal(t, "SYS_001", appCode(t, err))
}

func TestReportingService_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPurchaseRepository(ctrl)
	repo.EXPECT().GetStats(gomock.Any()).Return(&ports.PurchaseStats{
		TotalPurchases: 4,
		UniquePayers:   2,
		TotalRevenue:   "0.04",
	}, nil)

	svc := service.NewReportingService(repo)
	stats, err := svc.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalPurchases)
	assert.Equal(t, "0.04", stats.TotalRevenue)
}
