package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"github.com/benbeisheim/clickchess-backend/internal/controller"
	"github.com/benbeisheim/clickchess-backend/internal/obslog"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/benbeisheim/clickchess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("store init failed", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer func() { _ = st.Close() }()

	app := fiber.New(fiber.Config{AppName: "clickchess"})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
		return err
	})

	// Initialize services
	sessionManager := service.NewSessionManager(st)
	sessionService := service.NewSessionService(sessionManager)

	// Initialize controllers
	sessionController := controller.NewSessionController(sessionService)
	wsController := controller.NewWebSocketController(sessionService)

	controller.RegisterRoutes(app, sessionController, wsController, controller.RouteConfig{
		ReadBufferSize:  cfg.WSReadBufferSize,
		WriteBufferSize: cfg.WSWriteBufferSize,
		Origins:         cfg.AllowedOrigins,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("store", cfg.StoreBackend),
	)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		logger.Fatal("listen failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.AppConfig) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		return store.OpenRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL())
	case config.StorePostgres:
		return store.OpenPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return store.NewMemoryStore(), nil
	}
}
