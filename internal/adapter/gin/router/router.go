package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-page-service/internal/adapter/gin/handler"
	"user-page-service/internal/adapter/gin/middleware"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	pageHandler *handler.PageHandler,
	rateLimiter *middleware.RateLimiter,
	templates *template.Template,
	serviceName string,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.SetHTMLTemplate(templates)

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	pages := router.Group("", rateLimiter.Middleware())
	{
		pages.GET("/", pageHandler.Home)
		pages.GET("/users", pageHandler.UsersPage)
		pages.POST("/cart", pageHandler.AddToCart)
	}

	v1 := router.Group("/v1", rateLimiter.Middleware())
	{
		v1.GET("/users", pageHandler.ListUsers)
	}

	return router
}
