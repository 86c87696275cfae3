package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campaignhub-backend/internal/shared/middleware"
	"campaignhub-backend/internal/shared/response"
	"campaignhub-backend/pkg/container"
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

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/db-test", databaseTestHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupCampaignRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Logout)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
	}
}

// ========================================
// CAMPAIGN ROUTES
// ========================================
func setupCampaignRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authed := middleware.AuthMiddleware(c.JWTManager)

	campaigns := v1.Group("/campaigns")
	{
		// Public reads. Static segments must be registered alongside
		// the :id param routes; gin resolves them before the param.
		campaigns.GET("", c.CampaignHandler.List)
		campaigns.GET("/most-visited", c.CampaignHandler.ListMostVisited)
		campaigns.GET("/stats/platform", c.CampaignHandler.GetPlatformStats)
		campaigns.GET("/:id", c.CampaignHandler.Get)
		campaigns.GET("/:id/updates", c.CampaignHandler.ListUpdates)
		campaigns.GET("/:id/edit-history", c.CampaignHandler.GetEditHistory)

		// View tracking: unauthenticated, every call counts
		campaigns.POST("/:id/view", c.CampaignHandler.IncrementView)

		// Authenticated
		campaigns.POST("", authed, c.CampaignHandler.Create)
		campaigns.GET("/user", authed, c.CampaignHandler.ListMine)

		// Owner-only (ownership enforced in the service layer)
		campaigns.PUT("/:id", authed, c.CampaignHandler.Update)
		campaigns.PATCH("/:id/progress", authed, c.CampaignHandler.SetProgress)
		campaigns.PATCH("/:id/visibility", authed, c.CampaignHandler.SetVisibility)
		campaigns.POST("/:id/updates", authed, c.CampaignHandler.CreateUpdate)
		campaigns.DELETE("/:id", authed, c.CampaignHandler.Delete)
	}
}

// ========================================
// HEALTH HANDLERS
// ========================================

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"service":     c.Config.App.Name,
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"time":        time.Now().UTC(),
		})
	}
}

func databaseTestHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		if err := c.DB.Ping(checkCtx); err != nil {
			response.InternalServerError(ctx, "Database unreachable")
			return
		}

		response.Success(ctx, http.StatusOK, gin.H{
			"database": "ok",
			"pool":     c.DB.Stats(),
		})
	}
}
