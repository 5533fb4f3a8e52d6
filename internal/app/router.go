package app

import (
	"github.com/dvitale199/blossom/internal/config"
	"github.com/dvitale199/blossom/internal/middleware"
	"github.com/dvitale199/blossom/pkg/monitoring"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/spaces", c.space.ListSpaces)
		authGroup.POST("/spaces", c.space.CreateSpace)
		authGroup.GET("/spaces/:id", c.space.GetSpace)
		authGroup.DELETE("/spaces/:id", c.space.DeleteSpace)

		authGroup.GET("/spaces/:id/conversations", c.conversation.ListConversations)
		authGroup.POST("/spaces/:id/conversations", c.conversation.CreateConversation)
		authGroup.GET("/spaces/:id/conversations/active", c.conversation.GetActiveConversation)
		authGroup.GET("/conversations/:id", c.conversation.GetConversation)

		authGroup.POST("/conversations/:id/messages", c.message.SendMessage)
		authGroup.POST("/messages/:id/quiz-response", c.message.SubmitQuizResponse)
	}
}
