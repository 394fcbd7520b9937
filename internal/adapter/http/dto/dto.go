package dto

import (
	"time"

	"strategy-vault/internal/core/domain"
)

// WalletCreateRequest is the request body for demo wallet provisioning.
type WalletCreateRequest struct {
	UserID string `json:"user_id" binding:"required,min=1,max=64,safe_id"`
}

// WalletResponse is the response body for wallet creation and lookup.
type WalletResponse struct {
	UserID    string `json:"user_id"`
	Address   string `json:"address"`
	WalletID  string `json:"wallet_id"`
	Network   string `json:"network"`
	IsDemo    bool   `json:"is_demo"`
	CreatedAt string `json:"created_at"`
}

// NewWalletResponse maps a domain wallet to its wire shape.
func NewWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		UserID:    w.UserID,
		Address:   w.Address,
		WalletID:  w.WalletID,
		Network:   w.Network,
		IsDemo:    w.IsDemo,
		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// StrategyFullResponse is the response body for a paid strategy fetch.
type StrategyFullResponse struct {
	Strategy    domain.Strategy `json:"strategy"`
	Message     string          `json:"message"`
	PurchasedAt string          `json:"purchased_at"`
}

// PurchaseListResponse wraps a paginated purchase list.
type PurchaseListResponse struct {
	Purchases []domain.Purchase `json:"purchases"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}

// PurchaseStatsResponse is the response body for revenue statistics.
type PurchaseStatsResponse struct {
	TotalPurchases int64  `json:"total_purchases"`
	UniquePayers   int64  `json:"unique_payers"`
	TotalRevenue   string `json:"total_revenue"`
}
