package middleware

import (
	"strings"
	"time"

	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"
	"strategy-vault/internal/service"
	"strategy-vault/pkg/apperror"
	"strategy-vault/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// HeaderPayment carries the client's base64-encoded payment payload.
	HeaderPayment = "X-Payment"
	// HeaderPaymentResponse carries the server's verification receipt.
	HeaderPaymentResponse = "X-Payment-Response"

	// CtxPayment holds the verified *domain.PaymentPayload for downstream
	// handlers.
	CtxPayment = "payment"
)

// PaywallConfig holds the gate's per-deployment parameters.
type PaywallConfig struct {
	// Prices maps request paths to USDC decimal price strings. A path
	// absent from the map is not gated.
	Prices map[string]string
	// ProtectedPrefix makes the gate fail closed: a request under this
	// prefix whose path has no price entry is rejected instead of passed
	// through. Empty disables the check.
	ProtectedPrefix string
}

// Paywall creates the x402 access gate. Per request it is a small state
// machine: unpriced paths pass through; priced paths without a payment
// header get a 402 quote carrying one requirement; priced paths with a
// header go through the verifier and are admitted or denied. The gate
// itself keeps no state between requests; the only mutation it triggers
// is the verifier's ledger insert.
func Paywall(
	cfg PaywallConfig,
	builder *service.RequirementBuilder,
	verifier ports.PaymentVerifier,
	log zerolog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		price, priced := cfg.Prices[path]
		if !priced {
			if cfg.ProtectedPrefix != "" && strings.HasPrefix(path, cfg.ProtectedPrefix) {
				log.Error().Str("path", path).Msg("protected path has no configured price, failing closed")
				response.Error(c, apperror.ErrPriceNotConfigured())
				c.Abort()
				return
			}
			c.Next()
			return
		}

		header := c.GetHeader(HeaderPayment)
		if header == "" {
			response.PaymentRequired(c, builder.Build(price))
			c.Abort()
			return
		}

		payload, err := verifier.Verify(c.Request.Context(), header, builder.PayTo(), price)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		receipt := domain.PaymentReceipt{
			Verified:  true,
			Timestamp: time.Now().UnixMilli(),
		}
		if encoded, err := receipt.EncodeHeader(); err == nil {
			c.Header(HeaderPaymentResponse, encoded)
		}

		c.Set(CtxPayment, payload)
		c.Next()
	}
}

// PaymentFromContext returns the verified payment payload attached by the
// paywall, or nil when the request was not gated.
func PaymentFromContext(c *gin.Context) *domain.PaymentPayload {
	v, ok := c.Get(CtxPayment)
	if !ok {
		return nil
	}
	payload, ok := v.(*domain.PaymentPayload)
	if !ok {
		return nil
	}
	return payload
}
