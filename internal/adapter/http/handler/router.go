package handler

import (
	"strategy-vault/internal/adapter/http/middleware"
	redisStore "strategy-vault/internal/adapter/storage/redis"
	"strategy-vault/internal/core/ports"
	"strategy-vault/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Catalog        ports.StrategyCatalog
	Verifier       ports.PaymentVerifier
	ReqBuilder     *service.RequirementBuilder
	PaywallCfg     middleware.PaywallConfig
	PurchaseRepo   ports.PurchaseRepository // nil = purchase recording disabled
	WalletSvc      ports.WalletService
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	ReportingSvc   ports.ReportingService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Catalog (payment-gated detail) ---
	paywall := middleware.Paywall(deps.PaywallCfg, deps.ReqBuilder, deps.Verifier, deps.Logger)
	strategyHandler := NewStrategyHandler(deps.Catalog, deps.PurchaseRepo, deps.PaywallCfg.Prices, deps.Logger)
	strategies := v1.Group("/strategies")
	{
		strategies.GET("", rl("strategies"), strategyHandler.List)
		// Existence first: unknown ids 404 before any payment is demanded.
		strategies.GET("/:id/full", rl("strategy_full"), strategyHandler.RequireStrategy(), paywall, strategyHandler.GetFull)
	}

	// --- Demo wallet ---
	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallet := v1.Group("/wallet")
	{
		wallet.POST("/create", rl("wallet_create"), walletHandler.Create)
		wallet.GET("/:userId", walletHandler.Get)
	}

	// --- Operator auth ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- JWT-authenticated routes (operator dashboard) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc)
	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)
	dashboard := v1.Group("/dashboard", jwtAuth)
	{
		dashboard.GET("/purchases", rl("dashboard"), dashboardHandler.ListPurchases)
		dashboard.GET("/stats", rl("dashboard"), dashboardHandler.GetStats)
	}

	return r
}
