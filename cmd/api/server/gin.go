package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"user-page-service/cmd/api/di"
	ginrouter "user-page-service/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the Gin HTTP server
func SetupGinServer(c *di.Container, addr string, l *zap.Logger) *http.Server {
	router := ginrouter.SetupRouter(
		c.GinHandler,
		c.RateLimiter,
		c.Renderer.Templates(),
		c.Config.Logger.ServiceName,
		l,
	)

	l.Info("Gin server configured", zap.String("address", addr))

	// WriteTimeout is left unset: a users page render waits on the upstream
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
