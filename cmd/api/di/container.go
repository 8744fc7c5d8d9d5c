package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"user-page-service/cmd/api/infrastructure"
	ginhandler "user-page-service/internal/adapter/gin/handler"
	"user-page-service/internal/adapter/gin/middleware"
	"user-page-service/internal/adapter/remote"
	"user-page-service/internal/adapter/render"
	"user-page-service/internal/config"
	"user-page-service/internal/usecase/page"
	redisclient "user-page-service/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	RedisClient *redisclient.Client
	Fetcher     *remote.UserFetcher
	Renderer    *render.Renderer
	PageUC      page.Usecase
	RateLimiter *middleware.RateLimiter
	GinHandler  *ginhandler.PageHandler
}

// NewContainer creates and initializes all application dependencies.
// Redis is only dialed when rate limiting is enabled.
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	fetcher := remote.NewUserFetcher(cfg.Upstream.UsersURL, infrastructure.NewUpstreamClient(), l)
	pageUC := page.New(fetcher, l)

	c := &Container{
		Config:     cfg,
		Logger:     l,
		Fetcher:    fetcher,
		Renderer:   renderer,
		PageUC:     pageUC,
		GinHandler: ginhandler.NewPageHandler(pageUC, l),
	}

	if cfg.RateLimit.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb
		c.RateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}
