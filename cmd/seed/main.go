package main

import (
	"context"
	"os"

	"shopflow/config"
	"shopflow/internal/database"
	"shopflow/internal/hashing"
	"shopflow/internal/logger"
	"shopflow/internal/migrate"
	"shopflow/internal/repository"
	"shopflow/internal/seed"

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

	ctx := context.Background()
	if err := migrate.Migrate(ctx, db, log, migrate.DefaultOptions()); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	repo := repository.New(db)
	if err := seed.Run(ctx, repo, hashing.NewBcrypt(cfg.BcryptCost), log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("demo data seeded")
}
