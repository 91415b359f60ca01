package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Quangqueee/hanoi-residences/internal/config"
	"github.com/Quangqueee/hanoi-residences/internal/http/handlers"
	"github.com/Quangqueee/hanoi-residences/internal/http/middleware"
	"github.com/Quangqueee/hanoi-residences/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	listingHandler *handlers.ListingHandler,
	favoriteHandler *handlers.FavoriteHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/sessions", authHandler.ListSessions)
		protectedAuth.DELETE("/sessions/:id", authHandler.DeleteSession)
	}

	// Public catalogue
	api.GET("/listings", listingHandler.Search)
	api.GET("/listings/:id", middleware.UUIDValidator("id"), listingHandler.GetByID)
	api.GET("/ws", wsHandler.Handle)

	// Authenticated routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.Get)
		protected.PUT("/profile", profileHandler.Update)

		protected.GET("/favorites", favoriteHandler.List)
		protected.GET("/favorites/ids", favoriteHandler.ListIDs)
		protected.POST("/favorites/:listingId/toggle", middleware.UUIDValidator("listingId"), favoriteHandler.Toggle)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread/count", notificationHandler.CountUnread)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
	}

	// Back office
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireAdmin())
	{
		admin.POST("/listings", adminHandler.CreateListing)
		admin.GET("/listings/:id", middleware.UUIDValidator("id"), adminHandler.GetListing)
		admin.PUT("/listings/:id", middleware.UUIDValidator("id"), adminHandler.UpdateListing)
		admin.DELETE("/listings/:id", middleware.UUIDValidator("id"), adminHandler.DeleteListing)
		admin.POST("/listings/:id/summary", middleware.UUIDValidator("id"), adminHandler.GenerateSummary)

		admin.GET("/users", adminHandler.ListUsers)

		admin.POST("/media/photos", mediaHandler.UploadPhoto)
		admin.DELETE("/media/:id", middleware.UUIDValidator("id"), mediaHandler.DeleteMedia)
	}

	return r
}
