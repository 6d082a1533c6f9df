package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/auth"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/bus"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/cart"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/catalog"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/config"
	shophttp "github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/http"
	"github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/order"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	// Durable cart storage and the cross-view signal channel: redis
	// when configured (multi-process tabs), embedded sqlite plus an
	// in-process bus otherwise.
	var (
		snaps   cart.Snapshots
		signals bus.Bus
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		log.Info("using redis cart storage", zap.String("addr", cfg.RedisAddr))
		snaps = cart.NewRedisStore(redisClient, log)
		signals = bus.NewRedisBus(redisClient, log)
	} else {
		sqliteStore, err := cart.NewSQLiteStore(cfg.SQLitePath, log)
		if err != nil {
			log.Fatal("failed to open cart database", zap.Error(err))
		}
		defer sqliteStore.Close()
		if err := sqliteStore.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		log.Info("using sqlite cart storage", zap.String("path", cfg.SQLitePath))
		snaps = sqliteStore
		signals = bus.NewMemoryBus()
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	listingSource := catalog.NewHTTPSource(cfg.ListingServiceURL, httpClient)
	listings := catalog.New(listingSource, log)

	carts := cart.NewManager(snaps, signals, listings, log)
	defer carts.Close()

	var events *order.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		events = order.NewEventPublisher(cfg.KafkaBrokers, log)
		defer events.Close()
	}

	sink := order.NewHTTPSink(cfg.OrderServiceURL, httpClient)
	coordinator := order.NewCoordinator(sink, events, log)

	// Token directory is an external identity concern; the built-in
	// table only serves local development.
	directory := auth.StaticDirectory{
		"dev-buyer": &auth.User{ID: "buyer-1", Name: "Dev Buyer", Region: "Oromia", Woreda: "Ada'a"},
	}

	router := shophttp.NewRouter(
		shophttp.NewBrowseHandler(listings),
		shophttp.NewCartHandler(carts, coordinator, signals),
		directory,
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "buyer-api"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("buyer API listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
