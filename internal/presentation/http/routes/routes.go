package routes

import (
	"time"

	"github.com/docudesk/typecenter-api/internal/config"
	domainRepo "github.com/docudesk/typecenter-api/internal/domain/repository"
	"github.com/docudesk/typecenter-api/internal/presentation/http/handler"
	"github.com/docudesk/typecenter-api/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Document *handler.DocumentHandler
	Wallet   *handler.WalletHandler
	Catalog  *handler.CatalogHandler
	Customer *handler.CustomerHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		// Replayed mutating requests return their cached responses; in
		// particular a retried invoice creation cannot charge a wallet
		// card twice.
		idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})

		documents := v1.Group("/documents")
		documents.Use(idempotency)
		{
			documents.POST("", h.Document.Create)
			documents.GET("", h.Document.List)
			documents.GET("/cursor", h.Document.ListWithCursor)
			documents.GET("/:id", h.Document.Get)
			documents.GET("/:id/receipt", h.Document.Receipt)
			documents.PATCH("/:id/pay", h.Document.MarkPaid)
			documents.PATCH("/:id/work-status", h.Document.UpdateWorkStatus)
			documents.POST("/:id/invoice", h.Document.GenerateInvoice)
		}

		wallet := v1.Group("/wallet-cards")
		wallet.Use(idempotency)
		{
			wallet.POST("", h.Wallet.Create)
			wallet.GET("", h.Wallet.List)
			wallet.GET("/active", h.Wallet.ListActive)
			wallet.GET("/:id", h.Wallet.Get)
			wallet.PUT("/:id", h.Wallet.Update)
			wallet.DELETE("/:id", h.Wallet.Delete)
			wallet.POST("/:id/top-up", h.Wallet.TopUp)
			wallet.GET("/:id/transactions", h.Wallet.Transactions)
		}

		services := v1.Group("/services")
		{
			services.POST("", h.Catalog.Create)
			services.GET("", h.Catalog.List)
			services.GET("/:id", h.Catalog.Get)
			services.PUT("/:id", h.Catalog.Update)
			services.DELETE("/:id", h.Catalog.Delete)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("", h.Customer.List)
			customers.GET("/cursor", h.Customer.ListWithCursor)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
		}
	}

	return router
}
