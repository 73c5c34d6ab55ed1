package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/mentor-sessions/backend/internal/auth"
	"github.com/ayush/mentor-sessions/backend/internal/config"
	"github.com/ayush/mentor-sessions/backend/internal/server"
	"github.com/ayush/mentor-sessions/backend/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)
	ctx := context.Background()

	deps := server.Deps{
		Tokens: auth.NewTokens([]byte(cfg.JWTSecret), cfg.TokenTTL),
		Logger: log,
	}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		mem := store.NewMemoryStore()
		deps.Users, deps.Sessions = mem, mem
		log.Warn("using in-memory store, data is lost on exit")

	default:
		// ── MongoDB ──────────────────────────────────────────────
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return err
		}
		defer mongoClient.Disconnect(context.Background())
		if err := mongoClient.Ping(ctx, nil); err != nil {
			return err
		}
		mongoDB := mongoClient.Database(cfg.MongoDB)
		deps.Sessions = store.NewMongoStore(mongoDB)
		log.Info("connected to MongoDB", "database", cfg.MongoDB)

		if cfg.StoreDriver == config.DriverPostgres {
			// ── PostgreSQL ───────────────────────────────────────
			pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
			if err != nil {
				return err
			}
			defer pgPool.Close()
			pgStore := store.NewPostgresStore(pgPool)
			if err := pgStore.Migrate(ctx); err != nil {
				return err
			}
			deps.Users = pgStore
			log.Info("users stored in PostgreSQL")
		} else {
			users := store.NewMongoUserStore(mongoDB)
			if err := users.Migrate(ctx); err != nil {
				return err
			}
			deps.Users = users
		}
	}

	// ── Redis (optional) ─────────────────────────────────────────
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer rdb.Close()
		deps.Revoker = auth.NewRedisRevoker(rdb)
		log.Info("token revocation enabled", "redis", cfg.RedisAddr)
	}

	// ── Server ───────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-quit:
	}

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
