package integration

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"strategy-vault/config"
	httpHandler "strategy-vault/internal/adapter/http/handler"
	"strategy-vault/internal/adapter/http/middleware"
	memStorage "strategy-vault/internal/adapter/storage/memory"
	redisStorage "strategy-vault/internal/adapter/storage/redis"
	"strategy-vault/internal/core/domain"
	"strategy-vault/internal/core/ports"
	"strategy-vault/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	merchantAddr = "0x2222222222222222222222222222222222222222"
	operatorPass = "operator-pass"
	premiumPath  = "/api/v1/strategies/passive-yield/full"
)

// testApp wires the full application stack: real handlers, middleware and
// services over miniredis (replay ledger + rate limits) and an in-memory
// purchase store standing in for PostgreSQL.
type testApp struct {
	router   *gin.Engine
	store    *purchaseStore
	tokenSvc *service.JWTTokenService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	paymentCfg := config.PaymentConfig{
		Scheme:            "coinbase-facilitator",
		Network:           "base",
		Asset:             "USDC",
		PayTo:             merchantAddr,
		MaxTimeoutSeconds: 300,
		Prices: map[string]string{
			"/api/v1/strategies/passive-yield/full": "0.01",
			"/api/v1/strategies/investooor/full":    "0.01",
			"/api/v1/strategies/degen-mode/full":    "0.01",
		},
		ProtectedPrefix: "/api/v1/strategies/",
		ReplayTTL:       24 * time.Hour,
	}

	log := zerolog.Nop()

	hashSvc := service.NewArgon2HashService()
	passwordHash, err := hashSvc.Hash(operatorPass)
	require.NoError(t, err)

	tokenSvc := service.NewJWTTokenService("integration-secret", time.Hour, "strategy-vault")
	authSvc := service.NewAuthService(config.AuthConfig{
		OperatorUsername:     "admin",
		OperatorPasswordHash: passwordHash,
	}, hashSvc, tokenSvc)

	store := newPurchaseStore()
	ledger := redisStorage.NewReplayLedger(rdb)
	settlement := service.NewStructuralSettlement(log)
	verifier := service.NewX402Verifier(paymentCfg, ledger, settlement, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Catalog:    memStorage.NewDefaultCatalog(),
		Verifier:   verifier,
		ReqBuilder: service.NewRequirementBuilder(paymentCfg),
		PaywallCfg: middleware.PaywallConfig{
			Prices:          paymentCfg.Prices,
			ProtectedPrefix: paymentCfg.ProtectedPrefix,
		},
		PurchaseRepo:   store,
		WalletSvc:      service.NewWalletService(memStorage.NewWalletRepo(), "base-mainnet", log),
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		ReportingSvc:   service.NewReportingService(store),
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	return &testApp{router: router, store: store, tokenSvc: tokenSvc}
}

func (a *testApp) do(method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	a.router.ServeHTTP(w, req)
	return w
}

func proofHeader(t *testing.T, txHash string) string {
	t.Helper()
	payload := domain.PaymentPayload{
		X402Version: 1,
		Scheme:      "coinbase-facilitator",
		Network:     "base",
		Payload: domain.ProofDetails{
			TxHash:       txHash,
			PayerAddress: "0xClient",
			Amount:       "0.01",
		},
	}
	header, err := payload.EncodeHeader()
	require.NoError(t, err)
	return header
}

func (a *testApp) operatorToken(t *testing.T) string {
	t.Helper()
	body := []byte(`{"username":"admin","password":"` + operatorPass + `"}`)
	w := a.do(http.MethodPost, "/api/v1/auth/login", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/health", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"redis"`)
}

func TestCatalogListsPreviews(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/v1/strategies", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.StrategyPreview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "passive-yield", resp.Data[0].ID)
	assert.NotEmpty(t, resp.Data[0].AllocationSummary)

	// No allocation details before payment.
	assert.NotContains(t, w.Body.String(), `"allocation"`)
	assert.NotContains(t, w.Body.String(), `"percentage"`)
}

func TestPaywall_QuoteWithoutProof(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, premiumPath, nil, nil)

	require.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp struct {
		ErrorCode           string                      `json:"error_code"`
		PaymentRequirements []domain.PaymentRequirement `json:"paymentRequirements"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "X402_000", resp.ErrorCode)
	require.Len(t, resp.PaymentRequirements, 1)
	assert.Equal(t, merchantAddr, resp.PaymentRequirements[0].PayTo)
	assert.Equal(t, "0.01", resp.PaymentRequirements[0].MaxAmountRequired)
	assert.Equal(t, "USDC", resp.PaymentRequirements[0].Asset)
}

func TestPaidAccessFlow(t *testing.T) {
	app := newTestApp(t)

	// Pay and fetch the full strategy.
	w := app.do(http.MethodGet, premiumPath, nil, map[string]string{
		middleware.HeaderPayment: proofHeader(t, "0xflow1"),
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Strategy domain.Strategy `json:"strategy"`
			Message  string          `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "passive-yield", resp.Data.Strategy.ID)
	assert.NotEmpty(t, resp.Data.Strategy.Allocation)
	assert.Contains(t, resp.Data.Message, "Payment verified")

	// The receipt header decodes to a verified receipt.
	receipt := w.Header().Get(middleware.HeaderPaymentResponse)
	require.NotEmpty(t, receipt)
	raw, err := base64.StdEncoding.DecodeString(receipt)
	require.NoError(t, err)
	var decoded domain.PaymentReceipt
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Verified)

	// The purchase shows up on the operator dashboard.
	token := app.operatorToken(t)
	w = app.do(http.MethodGet, "/api/v1/dashboard/purchases", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xflow1")
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = app.do(http.MethodGet, "/api/v1/dashboard/stats", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_purchases":1`)
	assert.Contains(t, w.Body.String(), `"total_revenue":"0.01"`)
}

func TestReplayRejected(t *testing.T) {
	app := newTestApp(t)
	header := proofHeader(t, "0xreplay")

	w := app.do(http.MethodGet, premiumPath, nil, map[string]string{middleware.HeaderPayment: header})
	require.Equal(t, http.StatusOK, w.Code)

	// Same proof again — even against a different strategy.
	w = app.do(http.MethodGet, "/api/v1/strategies/degen-mode/full", nil, map[string]string{middleware.HeaderPayment: header})
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "X402_006")
}

func TestUnsupportedVersionRejected(t *testing.T) {
	app := newTestApp(t)

	payload := domain.PaymentPayload{
		X402Version: 2,
		Scheme:      "coinbase-facilitator",
		Network:     "base",
		Payload:     domain.ProofDetails{TxHash: "0xv2", PayerAddress: "0xClient"},
	}
	header, err := payload.EncodeHeader()
	require.NoError(t, err)

	w := app.do(http.MethodGet, premiumPath, nil, map[string]string{middleware.HeaderPayment: header})
	require.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "X402_003")
}

func TestUnknownStrategy404(t *testing.T) {
	app := newTestApp(t)

	// With and without payment header: existence wins.
	w := app.do(http.MethodGet, "/api/v1/strategies/ghost/full", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CAT_001")

	w = app.do(http.MethodGet, "/api/v1/strategies/ghost/full", nil, map[string]string{
		middleware.HeaderPayment: proofHeader(t, "0xwasted"),
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	// The proof was not consumed by the 404: it still works on a real strategy.
	w = app.do(http.MethodGet, premiumPath, nil, map[string]string{
		middleware.HeaderPayment: proofHeader(t, "0xwasted"),
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWalletLifecycle(t *testing.T) {
	app := newTestApp(t)

	// Unknown wallet: 404.
	w := app.do(http.MethodGet, "/api/v1/wallet/alice", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "WAL_001")

	// First create: 201.
	w = app.do(http.MethodPost, "/api/v1/wallet/create", []byte(`{"user_id":"alice"}`), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			Address string `json:"address"`
			IsDemo  bool   `json:"is_demo"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Data.IsDemo)
	assert.Len(t, created.Data.Address, 42)

	// Second create: 200 with the same address.
	w = app.do(http.MethodPost, "/api/v1/wallet/create", []byte(`{"user_id":"alice"}`), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Data.Address)

	// Lookup returns the stored wallet.
	w = app.do(http.MethodGet, "/api/v1/wallet/alice", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), created.Data.Address)
}

func TestDashboardRejectsBadToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/api/v1/dashboard/stats", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_002")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)

	body := []byte(`{"username":"admin","password":"wrong"}`)
	w := app.do(http.MethodPost, "/api/v1/auth/login", body, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}
