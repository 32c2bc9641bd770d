package handler

import (
	"recoverable-ledger/config"
	"recoverable-ledger/internal/adapter/http/middleware"
	redisStore "recoverable-ledger/internal/adapter/storage/redis"
	"recoverable-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LedgerSvc      ports.LedgerService
	AssetSvc       ports.AssetService
	SigSvc         ports.SignatureService
	NonceStore     ports.NonceStore
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Authority      config.LedgerConfig
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (verifies PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

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

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- JWT-authenticated routes (operator API) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	accountHandler := NewAccountHandler(deps.LedgerSvc)
	transferHandler := NewTransferHandler(deps.LedgerSvc)
	eventHandler := NewEventHandler(deps.LedgerSvc)

	accounts := v1.Group("/accounts/me", jwtAuth)
	{
		accounts.GET("/balance", rl("accounts"), accountHandler.GetBalance)
		accounts.GET("/spendable", rl("accounts"), accountHandler.GetSpendableBalance)
		accounts.GET("/state", rl("accounts"), accountHandler.GetState)
	}

	transfers := v1.Group("/transfers", jwtAuth)
	{
		transfers.POST("", rl("transfers"), transferHandler.Transfer)
	}

	events := v1.Group("/events", jwtAuth)
	{
		events.GET("", rl("events"), eventHandler.ListEvents)
	}

	// --- HMAC-authenticated routes (recovery authority) ---
	authorityAuth := middleware.AuthorityAuth(deps.Authority, deps.SigSvc, deps.NonceStore, deps.Logger)
	custodyHandler := NewCustodyHandler(deps.LedgerSvc, deps.AssetSvc)

	custody := v1.Group("/custody", authorityAuth)
	{
		custody.POST("/freeze", rl("custody"), custodyHandler.Freeze)
		custody.POST("/cases/close", rl("custody"), custodyHandler.CloseCase)
		custody.POST("/mint", rl("custody"), custodyHandler.Mint)
		custody.POST("/burn", rl("custody"), custodyHandler.Burn)
		custody.GET("/accounts/:id/state", rl("custody"), custodyHandler.GetAccountState)
		custody.GET("/accounts/:id/events", rl("custody"), eventHandler.ListAccountEvents)
	}

	return r
}
