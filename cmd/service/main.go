package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopflow/config"
	"shopflow/internal/database"
	"shopflow/internal/hashing"
	"shopflow/internal/logger"
	"shopflow/internal/migrate"
	"shopflow/internal/repository"
	"shopflow/internal/router"
	"shopflow/internal/service"
	"shopflow/internal/token"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	if err := migrate.Migrate(context.Background(), db, log, migrate.DefaultOptions()); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	repo := repository.New(db)
	hasher := hashing.NewBcrypt(cfg.BcryptCost)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	svcs := router.Services{
		Auth:      service.NewAuthService(repo, hasher, tokens, cfg.JWT.AccessExp, log),
		Catalog:   service.NewCatalogService(repo),
		Cart:      service.NewCartService(repo),
		Orders:    service.NewOrderService(repo, log),
		Analytics: service.NewAnalyticsService(repo),
	}

	r := router.Router(svcs, tokens, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("HTTP server stopped")
}
