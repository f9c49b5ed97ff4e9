package router

import (
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/analytics"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/auth"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/config"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/importer"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/member"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/meta"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/session"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/middleware"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/token"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/store"
	"github.com/gin-gonic/gin"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, gateway store.Gateway) {
	// Meta handler (health check)
	metaHandler := meta.NewHandler(cfg, db, gateway)
	router.GET("/health", metaHandler.Health)

	// repository
	operatorRepository := auth.NewOperatorRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	notifier := session.NewNotifier()

	// member caches follow the session lifecycle
	registry := member.NewCacheRegistry(gateway)
	registry.Subscribe(notifier)

	importEngine := importer.NewEngine(cfg.Import.MaxConcurrency)

	// service
	authService := auth.NewAuthService(db.DB, operatorRepository, tokenManager, notifier)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(registry, gateway, importEngine, cfg.Import.MaxUploadBytes)
	analyticsHandler := analytics.NewAnalyticsHandler(registry)

	jwt := middleware.JWTWithManager(tokenManager)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/signup", authHandler.Signup)
		authV1.POST("/login", authHandler.Login)
		authV1.POST("/logout", jwt, authHandler.Logout)
	}

	memberV1 := router.Group("/api/v1/members")
	memberV1.Use(jwt)
	{
		memberV1.GET("", memberHandler.List)
		memberV1.POST("", memberHandler.Create)
		memberV1.POST("/refresh", memberHandler.Refresh)
		memberV1.POST("/import", memberHandler.Import)
		memberV1.GET("/:id", memberHandler.Get)
		memberV1.PATCH("/:id", memberHandler.Update)
		memberV1.DELETE("/:id", memberHandler.Delete)
	}

	apiV1 := router.Group("/api/v1")
	apiV1.Use(jwt)
	{
		apiV1.GET("/kiosk/:code", memberHandler.Lookup)
		apiV1.GET("/analytics", analyticsHandler.Summary)
	}
}
