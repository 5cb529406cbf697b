package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/velikanov/docflow/internal/server/http/handlers"
	"github.com/velikanov/docflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.DocflowFacade, parser middleware.TokenParser, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	documentHandler := handlers.NewDocumentHandler(facade)
	commentHandler := handlers.NewCommentHandler(facade)
	notificationHandler := handlers.NewNotificationHandler(facade)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(parser))

	documents := protected.Group("/documents")
	documents.POST("", documentHandler.Create)
	documents.GET("/:id", documentHandler.Get)
	documents.PUT("/:id/status", documentHandler.ChangeStatus)
	documents.GET("/:id/transitions", documentHandler.Transitions)
	documents.GET("/:id/children", documentHandler.Children)
	documents.PUT("/:id/items", documentHandler.UpdateItems)
	documents.DELETE("/:id", documentHandler.Delete)
	documents.PUT("/:id/project", documentHandler.AttachProject)
	documents.POST("/:id/comments", commentHandler.Add)
	documents.GET("/:id/comments", commentHandler.List)
	documents.POST("/:id/history", commentHandler.AppendHistory)
	documents.GET("/:id/history", commentHandler.ListHistory)

	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.List)
	notifications.POST("/:id/read", notificationHandler.MarkRead)

	return engine
}
