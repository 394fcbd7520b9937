package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"strategy-vault/internal/core/domain"
	"strategy-vault/pkg/apperror"
	"strategy-vault/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/test", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestOK_Envelope(t *testing.T) {
	w := run(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		response.OK(c, gin.H{"hello": "world"})
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp response.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-123", resp.RequestID)
	assert.NotEmpty(t, resp.Timestamp)
	assert.Equal(t, map[string]interface{}{"hello": "world"}, resp.Data)
}

func TestCreated(t *testing.T) {
	w := run(func(c *gin.Context) {
		response.Created(c, gin.H{"id": "new"})
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"new"`)
	// No request id in context: one is generated so the envelope is never empty.
	assert.Contains(t, w.Body.String(), `"request_id"`)
}

func TestError_AppError(t *testing.T) {
	w := run(func(c *gin.Context) {
		response.Error(c, apperror.ErrStrategyNotFound())
	})

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CAT_001", resp.ErrorCode)
	assert.Equal(t, "Strategy not found", resp.Message)
}

func TestError_WrappedAppError(t *testing.T) {
	w := run(func(c *gin.Context) {
		inner := apperror.ErrSettlementRejected(errors.New("tx not found"))
		response.Error(c, inner)
	})

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "X402_008")
	// The wrapped internal error never reaches the client.
	assert.NotContains(t, w.Body.String(), "tx not found")
}

func TestError_UnknownError(t *testing.T) {
	w := run(func(c *gin.Context) {
		response.Error(c, errors.New("something internal"))
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_000")
	assert.NotContains(t, w.Body.String(), "something internal")
}

func TestPaymentRequired_Quote(t *testing.T) {
	req := domain.PaymentRequirement{
		Scheme:            "coinbase-facilitator",
		Network:           "base",
		MaxAmountRequired: "0.01",
		PayTo:             "0xMerchant",
		Asset:             "USDC",
		MaxTimeoutSeconds: 300,
	}

	w := run(func(c *gin.Context) {
		response.PaymentRequired(c, req)
	})

	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp response.PaymentRequiredResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "X402_000", resp.ErrorCode)
	require.Len(t, resp.PaymentRequirements, 1)
	assert.Equal(t, req, resp.PaymentRequirements[0])

	// Wire field names follow the x402 convention, not snake_case.
	assert.Contains(t, w.Body.String(), `"paymentRequirements"`)
	assert.Contains(t, w.Body.String(), `"maxAmountRequired"`)
}
