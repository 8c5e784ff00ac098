package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"textquiz/internal/config"
	"textquiz/internal/database"
	"textquiz/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "revert the latest applied migration instead of applying pending ones")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer l.Sync()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *down {
		src, err := database.Migrations()
		if err != nil {
			l.Fatal("Failed to open migrations", zap.Error(err))
		}
		defer src.Close()

		reverted, err := database.NewMigrator(db, src).Down(ctx)
		if err != nil {
			l.Fatal("Failed to revert migration", zap.Error(err))
		}
		l.Info("Down migration finished", zap.Bool("reverted", reverted))
		return
	}

	applied, err := database.RunMigrations(ctx, db)
	if err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations completed successfully", zap.Int("applied", applied))
}
