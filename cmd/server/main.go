// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/abinexis/homepage-admin/internal/config"
	"github.com/abinexis/homepage-admin/internal/database"
	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/logging"
	"github.com/abinexis/homepage-admin/internal/router"
	"github.com/abinexis/homepage-admin/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	logFile, err := logging.Setup(cfg.Log, cfg.Environment)
	if err != nil {
		logrus.Fatal("Failed to configure logging: ", err)
	}
	defer logFile.Close()

	// Initialize i18n
	if err := i18n.Initialize(); err != nil {
		logrus.Fatal("Failed to initialize i18n: ", err)
	}

	// Initialize database
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.Initialize(cfg.Database)
		if err != nil {
			logrus.Fatal("Failed to initialize database: ", err)
		}
		defer database.Close(db)

		// Run database migrations
		if err := database.RunMigrations(db); err != nil {
			logrus.Fatal("Failed to run migrations: ", err)
		}
	}

	auditService := services.NewAuditService(db)

	var sessions *services.SessionStore
	providers := []services.TokenProvider{services.ContextToken()}
	if cfg.Auth.SessionStore {
		sessions = services.NewSessionStore(db)
		providers = append(providers, sessions)
	}
	providers = append(providers, services.StaticToken(cfg.Auth.AdminToken))

	images, err := services.NewImageResolver(cfg.AWS)
	if err != nil {
		logrus.Fatal("Failed to initialize image resolver: ", err)
	}

	api := services.NewHTTPHomepageClient(cfg.API.BaseURL, cfg.API.Timeout,
		services.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst))

	console := services.NewConsole(services.Dependencies{
		API:      api,
		Tokens:   services.ValidatedTokens(services.ChainTokens(providers...)),
		Auditor:  auditService,
		Images:   images,
		Sessions: sessions,
	}, services.ConsoleOptions{
		PricingConcurrency: cfg.Editor.PricingConcurrency,
		BannerResyncDelay:  cfg.Editor.BannerResyncDelay,
		NoticeTTL:          cfg.Editor.NoticeTTL,
	})

	// Warm the collections; failures leave them empty until the next refresh
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.API.Timeout)
	_ = console.RefreshAll(warmCtx, true)
	cancelWarm()

	if cfg.Editor.RefreshSchedule != "" {
		sched, err := services.NewRefreshScheduler(console, cfg.Editor.RefreshSchedule, cfg.API.Timeout)
		if err != nil {
			logrus.Fatal("Failed to schedule refresh: ", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(console, auditService, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Error("Server forced to shutdown: ", err)
		return
	}

	logrus.Info("Server exited")
}
