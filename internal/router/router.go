// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abinexis/homepage-admin/internal/config"
	"github.com/abinexis/homepage-admin/internal/handlers"
	"github.com/abinexis/homepage-admin/internal/metrics"
	"github.com/abinexis/homepage-admin/internal/middleware"
	"github.com/abinexis/homepage-admin/internal/services"
)

func Initialize(console *services.Console, auditService *services.AuditService, cfg *config.Config) *gin.Engine {
	// Initialize handlers
	featuredHandler := handlers.NewFeaturedHandler(console)
	offersHandler := handlers.NewOffersHandler(console)
	bannerHandler := handlers.NewBannerHandler(console)
	catalogHandler := handlers.NewCatalogHandler(console)
	noticeHandler := handlers.NewNoticeHandler(console.Notices)
	sessionHandler := handlers.NewSessionHandler(console.Sessions, console.Notices)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	// cors.New panics on an empty origin list
	if len(cfg.Console.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Console.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language", middleware.AdminTokenHeader, middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, "X-Total-Count"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"collections": gin.H{
				"featured": console.Featured.Status(),
				"offers":   console.Offers.Status(),
				"banners":  console.Banners.Status(),
			},
		})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(middleware.ConsoleAuth(cfg.Console.User, cfg.Console.PasswordHash), middleware.BackendToken())
	{
		v1.GET("/catalog/search", catalogHandler.Search)
		v1.POST("/refresh", catalogHandler.Refresh)

		// Featured products
		featured := v1.Group("/featured")
		{
			featured.GET("", featuredHandler.List)
			featured.POST("", featuredHandler.Add)
			featured.DELETE("/:productId", featuredHandler.Remove)
		}

		// Special offers
		offers := v1.Group("/offers")
		{
			offers.GET("", offersHandler.List)
			offers.POST("", offersHandler.Add)
			offers.DELETE("/:productId", offersHandler.Remove)
		}

		// Banners
		banners := v1.Group("/banners")
		{
			banners.GET("", bannerHandler.GetBanners)
			banners.POST("", middleware.UploadRateLimit(), bannerHandler.CreateBanner)
			banners.PUT("/:id", middleware.UploadRateLimit(), bannerHandler.UpdateBanner)
			banners.DELETE("/:id", bannerHandler.DeleteBanner)
			banners.PUT("/:id/product", bannerHandler.UpdateBannerProduct)
		}

		// Operator notices
		notices := v1.Group("/notices")
		{
			notices.GET("", noticeHandler.GetNotice)
			notices.DELETE("", noticeHandler.Dismiss)
		}

		// Stored backend session
		session := v1.Group("/session")
		session.Use(middleware.SessionRateLimit())
		{
			session.GET("", sessionHandler.GetSession)
			session.POST("", sessionHandler.SaveSession)
			session.DELETE("", sessionHandler.RevokeSession)
		}

		v1.GET("/audit", auditHandler.GetAuditLogs)
	}

	return r
}
