package handler

import (
	"strconv"

	"strategy-vault/internal/adapter/http/dto"
	"strategy-vault/internal/core/ports"
	"strategy-vault/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles operator dashboard endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// ListPurchases handles GET /api/v1/dashboard/purchases.
func (h *DashboardHandler) ListPurchases(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	params := ports.PurchaseListParams{
		StrategyID: c.Query("strategy_id"),
		Page:       page,
		PageSize:   pageSize,
	}

	purchases, total, err := h.reportingSvc.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PurchaseListResponse{
		Purchases: purchases,
		Total:     total,
		Page:      params.Page,
		PageSize:  params.PageSize,
	})
}

// GetStats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.reportingSvc.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PurchaseStatsResponse{
		TotalPurchases: stats.TotalPurchases,
		UniquePayers:   stats.UniquePayers,
		TotalRevenue:   stats.TotalRevenue,
	})
}
