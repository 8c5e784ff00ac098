package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/godror/godror" // OCI Oracle driver, registered as "godror"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // pure Go Oracle driver, registered as "oracle"

	"textquiz/internal/config"
)

const pingTimeout = 10 * time.Second

// Connect opens a pooled Oracle connection with the configured driver and
// verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DB.Driver, err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}
	return db, nil
}
