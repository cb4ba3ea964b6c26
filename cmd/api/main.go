package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kaamwala/kaamwala_be/internal/account"
	"github.com/kaamwala/kaamwala_be/internal/auth"
	"github.com/kaamwala/kaamwala_be/internal/config"
	"github.com/kaamwala/kaamwala_be/internal/db"
	"github.com/kaamwala/kaamwala_be/internal/directory"
	"github.com/kaamwala/kaamwala_be/internal/handlers"
	"github.com/kaamwala/kaamwala_be/internal/logger"
	"github.com/kaamwala/kaamwala_be/internal/realtime"
	"github.com/kaamwala/kaamwala_be/internal/session"
	"github.com/kaamwala/kaamwala_be/internal/store"
	"github.com/kaamwala/kaamwala_be/internal/wizard"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb = realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.L().Fatal("redis not reachable", "addr", cfg.RedisAddr, "err", err)
		}
		defer rdb.Close()
	}

	st, err := openStore(cfg, rdb)
	if err != nil {
		logger.L().Fatal("open store", "driver", cfg.StoreDriver, "err", err)
	}
	logger.Info("store ready", "driver", cfg.StoreDriver)

	hub := realtime.NewHub()
	if cfg.NotifyBridge {
		bridge := realtime.NewBridge(rdb, hub)
		go func() {
			if err := bridge.Run(ctx, nil); err != nil && ctx.Err() == nil {
				logger.Error("auth bridge stopped", "err", err)
			}
		}()
	}

	accounts := account.NewSimulated(st, cfg.AccountLatency, cfg.RegisterLatency)
	sessions := session.NewManager(st, hub)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    handlers.MaxVideoBytes + 1<<20,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	handlers.Register(app, handlers.Deps{
		JWTSecret:       cfg.JWTSecret,
		ContextMinutes:  cfg.JWTExpiresMin,
		FrontendBaseURL: cfg.FrontendBaseURL,
		Flow:            auth.NewFlow(accounts, sessions),
		Sessions:        sessions,
		Hub:             hub,
		Drafts:          wizard.NewRegistry(accounts, cfg.DraftMax, cfg.DraftTTL),
		Directory:       directory.NewService(st),
	})

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	logger.Info("listening", "port", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("listen", "err", err)
	}
}

func openStore(cfg config.Config, rdb *redis.Client) (store.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(rdb, ""), nil
	case "postgres":
		gdb, err := db.Connect(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		gs := store.NewGormStore(gdb)
		if err := gs.Migrate(); err != nil {
			return nil, err
		}
		return gs, nil
	}
	return nil, store.ErrUnknownDriver
}
