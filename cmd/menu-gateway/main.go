package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/sevenmenu/gateway/internal/analytics"
	"github.com/sevenmenu/gateway/internal/api"
	"github.com/sevenmenu/gateway/internal/auth"
	"github.com/sevenmenu/gateway/internal/cart"
	"github.com/sevenmenu/gateway/internal/config"
	"github.com/sevenmenu/gateway/internal/storage"
	"github.com/sevenmenu/gateway/internal/upstream"
	"github.com/sevenmenu/gateway/pkg/db"
	"github.com/sevenmenu/gateway/pkg/redisconn"
)

func main() {
	configPath := os.Getenv("SEVENMENU_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	log := logger.WithField("service", "menu-gateway")

	// one shared Redis client when any backend asks for it
	var redisClient *redis.Client
	if cfg.Storage.Backend == config.BackendRedis || cfg.Cart.Backend == config.BackendRedis {
		addr := redisconn.Addr()
		if addr == "" {
			log.Fatal("REDIS_ADDR is required for the redis backend")
		}
		redisClient, err = redisconn.New(addr)
		if err != nil {
			log.WithError(err).Fatal("redis connect")
		}
		defer redisClient.Close()
	}

	store, err := buildStorage(cfg, redisClient)
	if err != nil {
		log.WithError(err).Fatal("storage init")
	}

	client := upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)

	session := auth.NewManager(store, client, log)
	go session.Restore(context.Background())

	var carts cart.Store
	if cfg.Cart.Backend == config.BackendRedis {
		carts = cart.NewRedisStore(redisClient)
	} else {
		carts = cart.NewLocalStore()
	}

	tracker := analytics.NewTracker(client, log)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      api.NewRouter(client, carts, session, tracker, cfg.CountryCode, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("HTTP server shutdown")
		}
		close(idleConnsClosed)
	}()

	log.WithField("addr", cfg.ListenAddr).Info("starting menu-gateway")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("listen")
	}

	<-idleConnsClosed
	tracker.Drain()
	log.Info("server stopped")
}

func buildStorage(cfg *config.Config, redisClient *redis.Client) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	case config.BackendRedis:
		return storage.NewRedisStore(redisClient), nil
	case config.BackendPostgres:
		conn, err := db.NewPostgresConnection(db.LoadPostgresConfig())
		if err != nil {
			return nil, err
		}
		pg := storage.NewPostgresStore(conn)
		if err := pg.Initialize(context.Background()); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return storage.NewFileStore(cfg.Storage.FileDir)
	}
}
