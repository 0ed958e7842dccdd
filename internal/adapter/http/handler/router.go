package handler

import (
	"wallet-checkout/internal/adapter/http/middleware"
	redisStore "wallet-checkout/internal/adapter/storage/redis"
	"wallet-checkout/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies. Wallet tokens are a few kilobytes.
const maxBodyBytes = 64 << 10

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ValidationSvc         ports.MerchantValidationService
	AuthorizationSvc      ports.AuthorizationService
	TokenSvc              ports.TokenService
	AuditRepo             ports.AuditRepository      // nil = audit listing disabled
	AuditSvc              ports.AuditService         // nil = audit logging disabled
	RateLimitStore        *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers        []ports.HealthChecker
	AllowedOrigins        []string
	DomainAssociationFile string
	Mode                  string // gin mode; empty = release
	Logger                zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.AllowedOrigins))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	association := DomainAssociation(deps.DomainAssociationFile)
	r.GET("/.well-known/apple-developer-merchantid-domain-association", association)
	r.GET("/.well-known/apple-developer-merchantid-domain-association.txt", association)

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

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

	v1 := r.Group("/api/v1", middleware.RequireJSON())
	sessionAuth := middleware.SessionAuth(deps.TokenSvc, deps.Logger)

	checkout := NewCheckoutHandler(deps.ValidationSvc, deps.AuthorizationSvc)
	v1.POST("/merchant-validation", rl(middleware.GroupMerchantValidation), checkout.ValidateMerchant)
	v1.POST("/authorize-payment", sessionAuth, rl(middleware.GroupAuthorizePayment), checkout.AuthorizePayment)

	if deps.AuditRepo != nil {
		audit := NewAuditHandler(deps.AuditRepo)
		v1.GET("/audit-logs", sessionAuth, rl(middleware.GroupAudit), audit.ListRecent)
	}

	return r
}
