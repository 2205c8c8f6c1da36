package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"luna-chat-api/internal/middleware"
	"luna-chat-api/internal/services"
)

// ServiceName identifies this API in health checks
const ServiceName = "luna-chat-api"

// Version is reported by the health check
const Version = "1.0.0"

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	ChatService services.ChatService
	AllowOrigin string
	Version     string
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	version := config.Version
	if version == "" {
		version = Version
	}

	chatHandler := NewChatHandler(config.ChatService, config.AllowOrigin)
	eventHandler := NewEventHandler(config.AllowOrigin)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   ServiceName,
			"version":   version,
			"responder": config.ChatService.ResponderName(),
		})
	})

	// Method checks live in the handlers so every verb gets the same answer
	// as the Lambda path.
	router.Any("/chat", chatHandler.Chat)

	v1 := router.Group("/api/v1")
	{
		v1.Any("/chat", chatHandler.Chat)
		v1.GET("/hello", GinHandler(Hello, "*"))

		debug := v1.Group("/debug")
		{
			debug.Any("/event", GinHandler(eventHandler.Handle, config.AllowOrigin))
		}
	}
}

// SetupMiddleware configures global middleware. allowOrigin is applied to
// the errors middleware writes itself.
func SetupMiddleware(router *gin.Engine, maxBodyBytes int64, allowOrigin string) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(allowOrigin))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(maxBodyBytes, allowOrigin))
	router.Use(middleware.StructuredLogger())
}
