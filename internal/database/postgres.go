package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/migrations"
)

// ConnectPostgres opens the database through the pgx stdlib driver and runs
// the embedded goose migrations.
func ConnectPostgres(ctx context.Context, dsn string, logger *zap.SugaredLogger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Errorf("Postgres ping failed: %v", err)
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	logger.Info("Postgres connected, migrations applied")
	return db, nil
}
