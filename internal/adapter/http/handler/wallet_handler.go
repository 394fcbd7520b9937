package handler

import (
	"strategy-vault/internal/adapter/http/dto"
	"strategy-vault/internal/core/ports"
	"strategy-vault/pkg/apperror"
	"strategy-vault/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles demo wallet endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// Create handles POST /api/v1/wallet/create. Idempotent per user id: the
// first call creates a wallet (201), later calls return the existing one
// (200).
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.WalletCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, created, err := h.walletSvc.Provision(c.Request.Context(), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if created {
		response.Created(c, dto.NewWalletResponse(wallet))
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet))
}

// Get handles GET /api/v1/wallet/:userId.
func (h *WalletHandler) Get(c *gin.Context) {
	wallet, err := h.walletSvc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewWalletResponse(wallet))
}
