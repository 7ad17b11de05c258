package main

import (
	"github.com/gin-gonic/gin"

	"blogicum-backend/internal/shared/middleware"
	"blogicum-backend/internal/shared/response"
	"blogicum-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(containerChecks(c), c.DB.Stats))

	setupPublicRoutes(router, c)
	setupAuthRoutes(router, c)
	setupAuthorRoutes(router, c)
	setupAdminRoutes(router, c)

	router.NoRoute(response.NoRoute)
	router.NoMethod(response.NoMethod)

	return router
}

// ========================================
// PUBLIC ROUTES (optional auth)
// ========================================
// Token hợp lệ thì author thấy được posts ẩn của chính mình
func setupPublicRoutes(router *gin.Engine, c *container.Container) {
	public := router.Group("/", middleware.OptionalAuthMiddleware(c.JWTManager, c.UserService))
	{
		public.GET("", c.PostHandler.Home)
		public.GET("/category/:slug", c.PostHandler.Category)
		public.GET("/posts/:post_id", c.PostHandler.Detail)
		public.GET("/profile/:username", c.PostHandler.Profile)

		public.GET("/categories", c.CategoryHandler.ListPublished)
		public.GET("/locations", c.LocationHandler.ListPublished)
	}
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	requireAuth := middleware.AuthMiddleware(c.JWTManager, c.UserService)

	auth := router.Group("/auth")
	{
		auth.POST("/registration", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/logout", requireAuth, c.UserHandler.Logout)
		auth.PUT("/password_change", requireAuth, c.UserHandler.ChangePassword)
	}
}

// ========================================
// AUTHOR ROUTES (auth required)
// ========================================
func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	authed := router.Group("/", middleware.AuthMiddleware(c.JWTManager, c.UserService))
	{
		authed.GET("/profile", c.UserHandler.GetMe)
		authed.PUT("/profile", c.UserHandler.UpdateProfile)

		authed.POST("/posts", c.PostHandler.Create)
		authed.GET("/posts/:post_id/edit", c.PostHandler.EditForm)
		authed.POST("/posts/:post_id/edit", c.PostHandler.Update)
		authed.POST("/posts/:post_id/delete", c.PostHandler.Delete)

		authed.POST("/posts/:post_id/comment", c.CommentHandler.Add)
		authed.POST("/posts/:post_id/edit_comment/:comment_id", c.CommentHandler.Edit)
		authed.POST("/posts/:post_id/delete_comment/:comment_id", c.CommentHandler.Delete)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(router *gin.Engine, c *container.Container) {
	admin := router.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager, c.UserService),
		middleware.AdminMiddleware(),
	)

	categories := admin.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.POST("", c.CategoryHandler.Create)
		categories.GET("/:id", c.CategoryHandler.Get)
		categories.PUT("/:id", c.CategoryHandler.Update)
		categories.DELETE("/:id", c.CategoryHandler.Delete)
	}

	locations := admin.Group("/locations")
	{
		locations.GET("", c.LocationHandler.List)
		locations.POST("", c.LocationHandler.Create)
		locations.GET("/:id", c.LocationHandler.Get)
		locations.PUT("/:id", c.LocationHandler.Update)
		locations.DELETE("/:id", c.LocationHandler.Delete)
	}

	admin.PATCH("/posts/:post_id/publish", c.PostHandler.SetPublished)
}
