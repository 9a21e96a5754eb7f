package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"comicvault-backend/internal/shared/middleware"
	"comicvault-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Health check
	router.GET("/health", healthCheckHandler(c))

	api := router.Group("/api")
	{
		setupComicRoutes(api, c)
		setupAuthRoutes(api, c)
		setupCollectionRoutes(api, c)
	}

	// Websocket relay nằm ngoài /api: phone join qua QR URL
	router.GET("/ws/scan", c.ScanRelay.HandleConnection)

	return router
}

// ========================================
// COMIC ROUTES (public lookup)
// ========================================
func setupComicRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/comics", c.ComicHandler.SearchComics)
	api.POST("/upload", c.ComicHandler.UploadScanImage)
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

// ========================================
// COLLECTION ROUTES (authenticated)
// ========================================
func setupCollectionRoutes(api *gin.RouterGroup, c *container.Container) {
	collection := api.Group("/collection")
	collection.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		collection.GET("", c.CollectionHandler.ListCollection)
		collection.POST("", c.CollectionHandler.AddItem)
		collection.DELETE("", c.CollectionHandler.ClearCollection)
		collection.PUT("/reorder", c.CollectionHandler.ReorderCollection)
		collection.GET("/export", c.CollectionHandler.ExportCollection)
		collection.POST("/import", c.CollectionHandler.ImportCollection)
		collection.PATCH("/:upc", c.CollectionHandler.UpdateItem)
		collection.DELETE("/:upc", c.CollectionHandler.RemoveItem)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		c.JSON(200, health)
	}
}
