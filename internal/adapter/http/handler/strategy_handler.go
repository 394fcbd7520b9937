package handler

import (
	"time"

	"strategy-vault/internal/adapter/http/dto"
	"strategy-vault/internal/adapter/http/middleware"
	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"
	"strategy-vault/pkg/apperror"
	"strategy-vault/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CtxStrategy holds the resolved *domain.Strategy for the request.
const CtxStrategy = "strategy"

// StrategyHandler handles catalog endpoints.
type StrategyHandler struct {
	catalog   ports.StrategyCatalog
	purchases ports.PurchaseRepository // nil = purchase recording disabled
	prices    map[string]string
	log       zerolog.Logger
}

// NewStrategyHandler creates a new StrategyHandler.
func NewStrategyHandler(catalog ports.StrategyCatalog, purchases ports.PurchaseRepository, prices map[string]string, log zerolog.Logger) *StrategyHandler {
	return &StrategyHandler{
		catalog:   catalog,
		purchases: purchases,
		prices:    prices,
		log:       log,
	}
}

// List handles GET /api/v1/strategies. Free endpoint: previews only, the
// allocation breakdown stays behind the paywall.
func (h *StrategyHandler) List(c *gin.Context) {
	strategies := h.catalog.List()
	previews := make([]domain.StrategyPreview, 0, len(strategies))
	for _, s := range strategies {
		previews = append(previews, s.Preview())
	}
	response.OK(c, previews)
}

// RequireStrategy resolves the :id route parameter against the catalog
// before any payment is demanded. An unknown id is a plain 404, whether or
// not the request carries a payment header.
func (h *StrategyHandler) RequireStrategy() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := h.catalog.GetByID(c.Param("id"))
		if s == nil {
			response.Error(c, apperror.ErrStrategyNotFound())
			c.Abort()
			return
		}
		c.Set(CtxStrategy, s)
		c.Next()
	}
}

// GetFull handles GET /api/v1/strategies/:id/full. The paywall has already
// admitted the request; this handler returns the complete strategy and
// records the purchase.
func (h *StrategyHandler) GetFull(c *gin.Context) {
	v, ok := c.Get(CtxStrategy)
	if !ok {
		response.Error(c, apperror.ErrStrategyNotFound())
		return
	}
	s := v.(*domain.Strategy)

	now := time.Now().UTC()
	h.recordPurchase(c, s, now)

	response.OK(c, dto.StrategyFullResponse{
		Strategy:    *s,
		Message:     "Payment verified. Full strategy unlocked.",
		PurchasedAt: now.Format(time.RFC3339),
	})
}

// recordPurchase persists the admitted access. Best effort: the client has
// already paid, so a storage failure must not turn the response into an
// error.
func (h *StrategyHandler) recordPurchase(c *gin.Context, s *domain.Strategy, now time.Time) {
	if h.purchases == nil {
		return
	}
	payload := middleware.PaymentFromContext(c)
	if payload == nil {
		return
	}

	amount := payload.Payload.Amount
	if amount == "" {
		amount = h.prices[c.Request.URL.Path]
	}

	purchase := &domain.Purchase{
		ID:           uuid.New(),
		StrategyID:   s.ID,
		PayerAddress: payload.Payload.PayerAddress,
		TxHash:       payload.Payload.TxHash,
		Network:      payload.Network,
		Amount:       amount,
		CreatedAt:    now,
	}
	if err := h.purchases.Create(c.Request.Context(), purchase); err != nil {
		h.log.Warn().Err(err).
			Str("strategy_id", s.ID).
			Str("tx_hash", payload.Payload.TxHash).
			Msg("failed to record purchase")
	}
}
