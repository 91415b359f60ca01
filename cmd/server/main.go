package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Quangqueee/hanoi-residences/internal/ai"
	"github.com/Quangqueee/hanoi-residences/internal/config"
	"github.com/Quangqueee/hanoi-residences/internal/db"
	"github.com/Quangqueee/hanoi-residences/internal/goroutine"
	httpHandlers "github.com/Quangqueee/hanoi-residences/internal/http/handlers"
	httpRouter "github.com/Quangqueee/hanoi-residences/internal/http/router"
	"github.com/Quangqueee/hanoi-residences/internal/logger"
	"github.com/Quangqueee/hanoi-residences/internal/repository"
	"github.com/Quangqueee/hanoi-residences/internal/service"
	"github.com/Quangqueee/hanoi-residences/internal/storage"
	"github.com/Quangqueee/hanoi-residences/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load configuration: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}
	goroutine.SetLogger(logger.Log)

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: failed to connect to database: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: migrations failed: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: failed to prepare media storage: %v", err)
	}

	// Repositories.
	userRepo := repository.NewUserRepository(dbConn)
	listingRepo := repository.NewListingRepository(dbConn)
	favoriteRepo := repository.NewFavoriteRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// WebSocket hub for district-watch pushes.
	hub := ws.NewHub()
	go hub.Run()

	// Services.
	authService := service.NewAuthService(userRepo, tokenManager)
	notificationService := service.NewNotificationService(notificationRepo, userRepo, hub)
	listingService := service.NewListingService(listingRepo, notificationService)
	favoriteService := service.NewFavoriteService(favoriteRepo, listingRepo)
	seedService := service.NewSeedService(userRepo, listingRepo)

	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIModel)

	// HTTP handlers.
	authHandler := httpHandlers.NewAuthHandler(authService)
	profileHandler := httpHandlers.NewProfileHandler(authService)
	listingHandler := httpHandlers.NewListingHandler(listingService)
	favoriteHandler := httpHandlers.NewFavoriteHandler(favoriteService)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	adminHandler := httpHandlers.NewAdminHandler(listingService, authService, aiClient)
	mediaHandler := httpHandlers.NewMediaHandler(mediaRepo, photoStorage)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	engine := httpRouter.SetupRouter(cfg, authHandler, profileHandler, listingHandler,
		favoriteHandler, notificationHandler, adminHandler, mediaHandler, wsHandler,
		healthHandler, seedHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: error shutting down http server: %v", err)
		}
	}()

	log.Printf("main: HTTP server listening on port %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: server exited with error: %v", err)
	}
}

func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: error closing database: %v", err)
	}
}
