package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/wichananm65/beauty-dashboard-backend/internal/analytics"
	"github.com/wichananm65/beauty-dashboard-backend/internal/catalog"
	"github.com/wichananm65/beauty-dashboard-backend/internal/chatbot"
	"github.com/wichananm65/beauty-dashboard-backend/internal/config"
	"github.com/wichananm65/beauty-dashboard-backend/internal/interaction"
	"github.com/wichananm65/beauty-dashboard-backend/internal/logger"
	"github.com/wichananm65/beauty-dashboard-backend/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := interaction.Select(ctx, cfg.Backend(), log)
	defer closeRepository(repo, log)

	app := newApp(cfg, log, repo, metrics.New(cfg.Metrics.Namespace))

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("backend", repo.Backend()))
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}
}

func newApp(cfg config.Config, log *zap.Logger, repo interaction.Repository, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "beauty-dashboard",
		DisableStartupMessage: true,
	})
	app.Use(logger.Middleware(log))
	app.Use(m.Middleware())
	setupCORS(app, cfg.CORS.AllowOrigins)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "backend": repo.Backend()})
	})
	app.Get("/metrics", m.Handler())

	cat := catalog.Default()

	catalogHandler := catalog.NewHandler(catalog.NewService(cat))
	catalogHandler.RegisterPublicRoutes(app)

	interactionService := interaction.NewService(repo, cat, m)
	interaction.NewHandler(interactionService).RegisterPublicRoutes(app)

	analytics.NewHandler(analytics.NewService(interactionService)).RegisterPublicRoutes(app)

	chatbot.NewHandler(chatbot.NewService(chatbot.NewResponder(cat.Profiles()), m)).RegisterPublicRoutes(app)

	return app
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + logger.RequestIDHeader,
	}))
}

type contextCloser interface {
	Close(ctx context.Context) error
}

func closeRepository(repo interaction.Repository, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	c, ok := repo.(contextCloser)
	if !ok {
		return
	}
	if err := c.Close(ctx); err != nil {
		log.Warn("close interaction log", zap.Error(err))
	}
}
