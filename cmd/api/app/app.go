package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-page-service/cmd/api/di"
	"user-page-service/cmd/api/server"
	"user-page-service/internal/adapter/render"
	"user-page-service/internal/config"
	"user-page-service/pkg/logger"
)

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Server    *server.Server
	Container *di.Container
}

// New creates a new application instance from the configuration found at configPath
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a, err := build(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Server = server.New(cfg, a.Logger, a.Container)
	return a, nil
}

// NewRenderOnly creates an application for a one-shot render pass. It builds no
// HTTP server, never connects to Redis and keeps stdout free for the page by
// moving stdout logging to stderr.
func NewRenderOnly(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Logger.OutputPath == "" || cfg.Logger.OutputPath == "stdout" {
		cfg.Logger.OutputPath = "stderr"
	}
	cfg.RateLimit.Enabled = false

	return build(ctx, cfg)
}

func build(ctx context.Context, cfg *config.Config) (*App, error) {
	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := di.NewContainer(ctx, cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    l,
		Container: container,
	}, nil
}

// Run serves HTTP until ctx is canceled or the server fails, then shuts down
func (a *App) Run(ctx context.Context) error {
	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", a.Config.App.Env),
		zap.String("upstream", a.Config.Upstream.UsersURL),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				a.Logger.Error("panic recovered in server", zap.Any("panic", r), zap.Stack("stack"))
				err = fmt.Errorf("server panic: %v", r)
			}
		}()
		if err := a.Server.Start(gctx); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("shutting down application...")
		return a.shutdown()
	})

	return g.Wait()
}

// RenderUsers performs a single users page render pass and writes the HTML to w
func (a *App) RenderUsers(ctx context.Context, w io.Writer) error {
	resp, err := a.Container.PageUC.UsersPage(ctx)
	if err != nil {
		return fmt.Errorf("render users page: %w", err)
	}

	return a.Container.Renderer.Render(w, render.UsersTemplate, render.UsersPage{
		Title:      "Users",
		Table:      resp.Table,
		RenderedAt: resp.RenderedAt,
	})
}

// Close releases container resources and flushes the logger
func (a *App) Close() error {
	var errs []error

	if err := a.Container.Close(); err != nil {
		errs = append(errs, fmt.Errorf("container close: %w", err))
	}

	if err := a.Logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		errs = append(errs, fmt.Errorf("logger sync: %w", err))
	}

	return errors.Join(errs...)
}

// shutdown gracefully stops the HTTP server within the configured timeout
func (a *App) shutdown() error {
	if a.Server == nil {
		return nil
	}

	timeout := time.Duration(a.Config.App.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.Logger.Info("starting graceful shutdown", zap.Int("timeout_seconds", a.Config.App.ShutdownTimeoutSeconds))

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("failed to shutdown HTTP server", zap.Error(err))
		return fmt.Errorf("HTTP shutdown: %w", err)
	}

	a.Logger.Info("application shutdown complete")
	return nil
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    cfg.App.Env,
	})
}

// ConfigPath returns the configuration directory from CONFIG_PATH, defaulting to "."
func ConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}
