package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mvalodim/pet_shop/internal/config"
	"github.com/mvalodim/pet_shop/internal/es"
	"github.com/mvalodim/pet_shop/internal/httpserver"
	"github.com/mvalodim/pet_shop/internal/logging"
	authmw "github.com/mvalodim/pet_shop/internal/middleware/auth"
	loggingmw "github.com/mvalodim/pet_shop/internal/middleware/logging"
	"github.com/mvalodim/pet_shop/internal/mykafka"
	"github.com/mvalodim/pet_shop/internal/repo"
	"github.com/mvalodim/pet_shop/internal/search"
	"github.com/mvalodim/pet_shop/internal/service"
	"github.com/mvalodim/pet_shop/internal/session"
	"github.com/mvalodim/pet_shop/pkg/db"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := repo.Migrate(database); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	store := repo.New(database)

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
	} else {
		logger.Warn("KAFKA_BROKERS not set, event publishing disabled")
	}

	var revoker session.Revoker = session.NewMemoryRevoker()
	if cfg.RedisAddr != "" {
		revoker = session.NewRedisRevoker(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory session revocation")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	sessionMW := authmw.NewSessionMiddleware(cfg.SessionSecret, revoker, store)

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.UserService{
			Repo:          store,
			SessionSecret: cfg.SessionSecret,
			Revoker:       revoker,
			OwnerID:       cfg.OwnerID,
		}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: store, Producer: producer, ES: esClient}},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: store}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: store, Producer: producer}},
		ReviewHandler:  &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: store}},
		SearchHandler:  &httpserver.SearchHTTP{ES: esClient, Index: search.ProductIndex},
		Session:        sessionMW,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
