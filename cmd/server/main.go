package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schoolrecords/records-portal/internal/api"
	"github.com/schoolrecords/records-portal/internal/api/handler"
	"github.com/schoolrecords/records-portal/internal/core/gate"
	"github.com/schoolrecords/records-portal/internal/core/ports"
	"github.com/schoolrecords/records-portal/internal/core/service"
	mongodb "github.com/schoolrecords/records-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/schoolrecords/records-portal/internal/infrastructure/db/redis"
	"github.com/schoolrecords/records-portal/internal/infrastructure/notify"
	"github.com/schoolrecords/records-portal/internal/infrastructure/queue"
	"github.com/schoolrecords/records-portal/internal/infrastructure/security"
	"github.com/schoolrecords/records-portal/internal/pkg/config"
	"github.com/schoolrecords/records-portal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Level: "info"})
		boot.Fatal().Err(err).Msg("config load failed")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "records-portal",
		Env:     cfg.Env,
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "records-portal",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect error")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close error")
		}
	}()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}

	var sink ports.ResetDelivery
	switch cfg.Reset.Delivery {
	case "log":
		sink = notify.NewLogSink(logger.Component("reset-delivery"))
	default:
		outbox := mongodb.NewResetOutbox(db)
		if err := outbox.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("reset outbox indexes failed")
		}
		sink = outbox
	}

	dispatcher := queue.NewDispatcher(cfg.Reset.Workers, sink, logger.Component("reset-dispatcher"))
	// Workers outlive the signal context so Close can drain queued notices.
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	dispatcher.Start(workerCtx)

	hasher := security.NewHasher(cfg.Auth.BcryptCost)
	tokens, err := security.NewJWTIssuer(cfg.Auth.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer init failed")
	}

	authService := service.NewAuthService(users, hasher, tokens,
		service.AuthConfig{SessionMaxAge: cfg.SessionTTL()}, logger.Component("auth"))
	resetService := service.NewPasswordResetService(users, hasher, tokens,
		redisdb.NewTokenDenylist(rdb), dispatcher,
		service.ResetConfig{BaseURL: cfg.BaseURL}, logger.Component("reset"))
	userService := service.NewUserService(users, hasher,
		service.UserConfig{DefaultPassword: cfg.Auth.DefaultPassword}, logger.Component("users"))

	router := api.NewRouter(api.Deps{
		Sessions: authService,
		Resets:   resetService,
		Users:    userService,
		Gate:     gate.New(gate.DefaultConfig()),
		Cookie: handler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
			MaxAge: cfg.SessionTTL(),
		},
		Health: map[string]handler.Pinger{
			"mongodb": handler.PingFunc(func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }),
			"redis":   handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
		Log: logger.Component("http"),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("http listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	dispatcher.Close()
}
